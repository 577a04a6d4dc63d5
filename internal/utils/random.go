package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}
var commonCourseNames = []string{
	"高等数学", "线性代数", "大学物理", "大学英语", "程序设计", "数据结构",
	"离散数学", "概率论", "计算机网络", "操作系统", "数据库系统", "编译原理",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// GenerateTeacherCode 用姓名的拼音首字母生成教师代码，例如 "王芳" -> "WF"
func GenerateTeacherCode(chineseName string) string {
	code := ""
	for _, py := range pinyin.LazyConvert(chineseName, nil) {
		if len(py) > 0 {
			code += strings.ToUpper(py[:1])
		}
	}
	return code
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleViewer,
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// 使用 Fisher-Yates 洗牌算法来生成一个非空的随机子集
func GenerateRandomSubset(arr []int64) []int64 {
	arrCopy := append([]int64{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	l := rand.Intn(len(arrCopy)) + 1
	return arrCopy[:l]
}

// GenerateRandomCatalog 随机生成一个可以通过 ValidateCatalog 的目录
func GenerateRandomCatalog() *domain.Catalog {
	catalog := &domain.Catalog{
		Name:  "排课目录" + GenerateRandomID(3, 3),
		Days:  int32(rand.Intn(3) + 5), // 5~7
		Slots: int32(rand.Intn(5) + 6), // 6~10
	}

	coursesNum := rand.Intn(len(commonCourseNames)-2) + 3
	courseIDs := make([]int64, coursesNum)
	for i, idx := range rand.Perm(len(commonCourseNames))[:coursesNum] {
		courseIDs[i] = int64(i)
		catalog.Courses = append(catalog.Courses, domain.Course{
			ID:           int64(i),
			Name:         commonCourseNames[idx],
			TimesPerWeek: int32(rand.Intn(6) + 1),
		})
	}

	// 先保证每门课程至少有一位教师，再随机补充一些可以讲授多门课程的教师
	for i, courseID := range courseIDs {
		name := GenerateRandomChineseName()
		catalog.Teachers = append(catalog.Teachers, domain.Teacher{
			ID:        int64(i),
			Name:      name,
			Code:      GenerateTeacherCode(name),
			CourseIDs: []int64{courseID},
		})
	}
	extraTeachers := rand.Intn(coursesNum)
	for i := 0; i < extraTeachers; i++ {
		name := GenerateRandomChineseName()
		catalog.Teachers = append(catalog.Teachers, domain.Teacher{
			ID:        int64(coursesNum + i),
			Name:      name,
			Code:      GenerateTeacherCode(name),
			CourseIDs: GenerateRandomSubset(courseIDs),
		})
	}

	classroomsNum := rand.Intn(4) + 2
	for i := 0; i < classroomsNum; i++ {
		catalog.Classrooms = append(catalog.Classrooms, domain.Classroom{
			ID:   int64(i),
			Name: fmt.Sprintf("教室 %d", i+1),
		})
	}

	return catalog
}

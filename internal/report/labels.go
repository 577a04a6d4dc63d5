package report

import "fmt"

var weekdayLabels = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

func dayLabel(day int32) string {
	if day >= 0 && int(day) < len(weekdayLabels) {
		return weekdayLabels[day]
	}
	return fmt.Sprintf("第 %d 天", day+1)
}

func slotLabel(slot int32) string {
	return fmt.Sprintf("第 %d 节", slot+1)
}

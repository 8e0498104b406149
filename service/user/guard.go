package user

import (
	"regexp"
	"strings"
)

// 处方/用药类问题直接拦截, 不交给LLM
var prescriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(prescribe|medicine|drug|medication|pill|tablet).*(for|should|take)`),
	regexp.MustCompile(`(what|which).*(medicine|drug|medication).*(should|take|use)`),
	regexp.MustCompile(`(dosage|dose|how much)`),
}

func IsPrescriptionRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range prescriptionPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

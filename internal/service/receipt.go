package service

import (
	"fmt"
	"strings"
	"time"
)

// Receipt prefixes per payment concept.
const (
	ReceiptPrefixColegiatura = "COL"
	ReceiptPrefixGraduacion  = "GRA"
	ReceiptPrefixCurso       = "CUR"
)

// ReceiptNumber builds a receipt number PREFIX-YYYY-NNNNNN where the trailing
// six digits come from the current epoch milliseconds.
func ReceiptNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, now.Year(), now.UnixMilli()%1000000)
}

// CategoryReceiptNumber builds a receipt number for one of the category
// payment tables. The prefix is the first three letters of the category key,
// upper-cased, so both book categories share LIB.
func CategoryReceiptNumber(category string, now time.Time) string {
	prefix := strings.ToUpper(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return ReceiptNumber(prefix, now)
}

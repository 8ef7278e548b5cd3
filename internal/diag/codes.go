package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Форматирование (находки из отчёта форматтера)
	FmtInfo            Code = 1000
	FmtReplaceSpan     Code = 1001
	FmtIncompleteParse Code = 1002

	// Отчёт форматтера (свойства самого отчёта)
	RptInfo     Code = 2000
	RptUnsorted Code = 2001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	FmtInfo:            "Formatting information",
	FmtReplaceSpan:     "Formatting replacement required",
	FmtIncompleteParse: "Formatter could not fully parse the file",
	RptInfo:            "Replacement report information",
	RptUnsorted:        "Replacement report entries were out of order",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RPT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

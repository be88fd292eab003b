package models

// MessageLabels holds the localized strings used in the booking summary
// message. Defaults are the Arabic labels the business uses; all of them
// can be overridden from config.
type MessageLabels struct {
	Title          string `yaml:"title"`
	DateLabel      string `yaml:"date"`
	PeriodLabel    string `yaml:"period"`
	MorningText    string `yaml:"morning"`
	EveningText    string `yaml:"evening"`
	FullDayText    string `yaml:"full_day"`
	NameLabel      string `yaml:"name"`
	PhoneLabel     string `yaml:"phone"`
	AddressLabel   string `yaml:"address"`
	NotesLabel     string `yaml:"notes"`
	PaymentHeader  string `yaml:"payment_header"`
	TotalLabel     string `yaml:"total"`
	PaidLabel      string `yaml:"paid"`
	RemainingLabel string `yaml:"remaining"`
	Closing        string `yaml:"closing"`
}

// DefaultMessageLabels returns the stock Arabic labels.
func DefaultMessageLabels() MessageLabels {
	return MessageLabels{
		Title:          "تأكيد الحجز لدى مزرعة DeeNoor",
		DateLabel:      "التاريخ",
		PeriodLabel:    "الفترة",
		MorningText:    "صباحي",
		EveningText:    "مسائي",
		FullDayText:    "يوم كامل",
		NameLabel:      "الاسم",
		PhoneLabel:     "رقم الهاتف",
		AddressLabel:   "العنوان",
		NotesLabel:     "الملاحظات",
		PaymentHeader:  "تفاصيل الدفع:",
		TotalLabel:     "المبلغ الكامل",
		PaidLabel:      "المبلغ المدفوع",
		RemainingLabel: "المبلغ المتبقي",
		Closing:        "شكراً لثقتكم بنا",
	}
}

// PeriodText maps a period to its localized display text.
func (l MessageLabels) PeriodText(p Period) string {
	switch p {
	case PeriodMorning:
		return l.MorningText
	case PeriodEvening:
		return l.EveningText
	default:
		return l.FullDayText
	}
}

package models

import (
	"golang.org/x/text/language"
)

// Category classifies a bill or recurring expense.
type Category string

const (
	CategoryElectricity  Category = "electricity"
	CategoryWater        Category = "water"
	CategoryInternet     Category = "internet"
	CategoryCreditCard   Category = "credit_card"
	CategoryPhone        Category = "phone"
	CategoryRent         Category = "rent"
	CategoryInsurance    Category = "insurance"
	CategorySubscription Category = "subscription"
	CategoryLoan         Category = "loan"
	CategoryOther        Category = "other"
)

// Categories returns all valid categories.
func Categories() []Category {
	return []Category{
		CategoryElectricity,
		CategoryWater,
		CategoryInternet,
		CategoryCreditCard,
		CategoryPhone,
		CategoryRent,
		CategoryInsurance,
		CategorySubscription,
		CategoryLoan,
		CategoryOther,
	}
}

// Valid reports whether the category is part of the enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectricity, CategoryWater, CategoryInternet,
		CategoryCreditCard, CategoryPhone, CategoryRent,
		CategoryInsurance, CategorySubscription, CategoryLoan,
		CategoryOther:
		return true
	}

	return false
}

// DisplayName returns the localized display name of the category.
// The switches are exhaustive on purpose so that a new category
// cannot be added without its display names.
func (c Category) DisplayName(tag language.Tag) string {
	_, index, _ := categoryMatcher.Match(tag)

	// Index 0 is Thai, see the matcher below
	if index == 0 {
		switch c {
		case CategoryElectricity:
			return "ค่าไฟ"
		case CategoryWater:
			return "ค่าน้ำ"
		case CategoryInternet:
			return "ค่าเน็ต"
		case CategoryCreditCard:
			return "บัตรเครดิต"
		case CategoryPhone:
			return "ค่าโทรศัพท์"
		case CategoryRent:
			return "ค่าเช่า"
		case CategoryInsurance:
			return "ประกัน"
		case CategorySubscription:
			return "ค่าสมาชิก"
		case CategoryLoan:
			return "เงินกู้"
		case CategoryOther:
			return "อื่นๆ"
		}
	}

	switch c {
	case CategoryElectricity:
		return "Electricity"
	case CategoryWater:
		return "Water"
	case CategoryInternet:
		return "Internet"
	case CategoryCreditCard:
		return "Credit card"
	case CategoryPhone:
		return "Phone"
	case CategoryRent:
		return "Rent"
	case CategoryInsurance:
		return "Insurance"
	case CategorySubscription:
		return "Subscription"
	case CategoryLoan:
		return "Loan"
	case CategoryOther:
		return "Other"
	}

	return string(c)
}

var categoryMatcher = language.NewMatcher([]language.Tag{
	language.Thai,
	language.English,
})

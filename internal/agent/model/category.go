package model

import "strings"

// Category is the routing label of a turn. Values outside the nine labels
// below never leave ParseCategory.
type Category string

const (
	CategoryComplaints Category = "Complaints"
	CategoryRefunds    Category = "Refunds"
	CategoryDelivery   Category = "Delivery"
	CategoryPayments   Category = "Payments"
	CategoryAccount    Category = "Account"
	CategoryPromotions Category = "Promotions"
	CategoryGeneral    Category = "General"
	CategoryEscalation Category = "Escalation"
	// CategoryDefault marks greeting/farewell small talk answered without a classifier.
	CategoryDefault Category = "Default"
)

// businessCategories is also the containment order used by ParseCategory.
var businessCategories = []Category{
	CategoryComplaints,
	CategoryRefunds,
	CategoryDelivery,
	CategoryPayments,
	CategoryAccount,
	CategoryPromotions,
	CategoryEscalation,
	CategoryGeneral,
}

// categoryStems are matched against lower-cased free text, in order.
var categoryStems = []struct {
	stem     string
	category Category
}{
	{"complaint", CategoryComplaints},
	{"refund", CategoryRefunds},
	{"deliver", CategoryDelivery},
	{"payment", CategoryPayments},
	{"account", CategoryAccount},
	{"promotion", CategoryPromotions},
	{"escalat", CategoryEscalation},
	{"general", CategoryGeneral},
}

// BusinessCategories returns the eight categories that own a responder.
func BusinessCategories() []Category {
	out := make([]Category, len(businessCategories))
	copy(out, businessCategories)
	return out
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the nine recognised labels.
func (c Category) Valid() bool {
	if c == CategoryDefault {
		return true
	}
	for _, bc := range businessCategories {
		if c == bc {
			return true
		}
	}
	return false
}

// ParseCategory normalises free classifier output into a Category: exact
// label first, then keyword containment, then General.
func ParseCategory(raw string) Category {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.Trim(text, "\"'`.*: ")
	if text == "" {
		return CategoryGeneral
	}
	if text == "default" {
		return CategoryDefault
	}
	for _, bc := range businessCategories {
		if text == strings.ToLower(string(bc)) {
			return bc
		}
	}
	for _, s := range categoryStems {
		if strings.Contains(text, s.stem) {
			return s.category
		}
	}
	return CategoryGeneral
}

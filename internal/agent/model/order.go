package model

import "strings"

// OrderID is an extracted order identifier or the NoOrderID sentinel. It is never empty.
type OrderID string

// NoOrderID is the literal the classifier returns when a query names no order.
const NoOrderID OrderID = "None"

var orderIDPrefixes = []string{
	"order id:", "order id", "order number:", "order number", "order #", "order:", "id:", "#",
}

var absentMarkers = map[string]bool{
	"": true, "none": true, "null": true, "nil": true, "n/a": true, "na": true, "no": true,
	"no order id": true, "not found": true, "no order id found": true,
}

func (o OrderID) String() string {
	return string(o)
}

// Present reports whether o carries a real identifier.
func (o OrderID) Present() bool {
	return o != "" && o != NoOrderID
}

// ParseOrderID normalises extractor output: it strips quoting and common
// prefixes and maps every absence marker onto NoOrderID.
func ParseOrderID(raw string) OrderID {
	text := strings.TrimSpace(raw)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	text = strings.Trim(text, "\"'`*. ")
	lower := strings.ToLower(text)
	for _, p := range orderIDPrefixes {
		if strings.HasPrefix(lower, p) {
			text = strings.TrimSpace(text[len(p):])
			lower = strings.ToLower(text)
		}
	}
	text = strings.Trim(text, "\"'`*. ")
	if absentMarkers[strings.ToLower(text)] {
		return NoOrderID
	}
	if fields := strings.Fields(text); len(fields) > 1 {
		// chatty answer: keep the last token that looks like an identifier
		for i := len(fields) - 1; i >= 0; i-- {
			if strings.ContainsAny(fields[i], "0123456789") {
				return OrderID(strings.Trim(fields[i], "\"'`*.,:;#()"))
			}
		}
		return NoOrderID
	}
	return OrderID(text)
}

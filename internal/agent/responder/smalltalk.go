package responder

import "strings"

const (
	GreetingReply = "Hello! How can I assist you today?"
	FarewellReply = "Thank you for reaching out! Have a great day!"
)

var smallTalk = map[string]string{
	"hi":        GreetingReply,
	"hello":     GreetingReply,
	"hey":       GreetingReply,
	"bye":       FarewellReply,
	"goodbye":   FarewellReply,
	"thank you": FarewellReply,
	"thanks":    FarewellReply,
}

// SmallTalk answers the fixed greeting and farewell phrases. Only whole
// queries match, so "hi, my order is late" still goes to the classifier.
func SmallTalk(query string) (string, bool) {
	reply, ok := smallTalk[strings.ToLower(strings.TrimSpace(query))]
	return reply, ok
}

package constants

// DateLayouts are the absolute date formats tried against receipt lines,
// in order. US month-first layouts come before day-first so that ambiguous
// dates resolve month-first; day-first still wins when the first field
// cannot be a month.
var DateLayouts = []string{
	"01/02/2006",
	"02/01/2006",
	"2006-01-02",
	"01-02-2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/06",
	"02/01/06",
	"01-02-06",
	"Jan 2 2006",
}

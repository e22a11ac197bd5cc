package model

// OutputColumns is the fixed CRM import schema. Every projected row has
// exactly these 20 fields in this order; columns not applicable to a
// source variant are emitted as empty strings, never omitted.
// Positions of the output columns, for consumers of projected rows.
const (
	ColFirstName = iota
	ColLastName
	ColCompanyName
	ColEmail
	ColPhone1
	ColPhone2
	ColPhone3
	ColMailingStreet
	ColMailingCity
	ColMailingState
	ColMailingZip
	ColTags
	ColOwnedProperties
	ColRecentlySold
	ColDispAddress
	ColDispAPN
	ColDispCounty
	ColDispState
	ColDispAcreage
	ColDispPrice
)

var OutputColumns = []string{
	"First Name",
	"Last Name",
	"Company Name",
	"Email",
	"Phone 1",
	"Phone 2",
	"Phone 3",
	"Mailing Street",
	"Mailing City",
	"Mailing State",
	"Mailing Zip",
	"Tags",
	"Owned Properties",
	"Realtor - Recently Sold",
	"[DISP] Property Address",
	"[DISP] Property APN",
	"[DISP] Property County",
	"[DISP] Property State",
	"[DISP] Property Acreage",
	"[DISP] Asking Price",
}

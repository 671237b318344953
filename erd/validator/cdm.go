// ABOUTME: Static reference tables for the validator: system columns and Common Data Model entity names.
// ABOUTME: Matching against either table is case-insensitive on the declared name.
package validator

// systemColumns are column names the target platform generates on every
// entity. A user column with one of these names collides at provisioning time.
var systemColumns = map[string]bool{
	"createdon":  true,
	"createdby":  true,
	"modifiedon": true,
	"modifiedby": true,
	"ownerid":    true,
	"statecode":  true,
	"statuscode": true,
}

// cdmEntities are common platform entity names from the Common Data Model.
// An entity matching one of these is worth flagging because a standard entity
// with built-in behavior already exists.
var cdmEntities = map[string]bool{
	"account":       true,
	"contact":       true,
	"lead":          true,
	"opportunity":   true,
	"case":          true,
	"incident":      true,
	"activity":      true,
	"email":         true,
	"phonecall":     true,
	"task":          true,
	"appointment":   true,
	"user":          true,
	"systemuser":    true,
	"team":          true,
	"businessunit":  true,
	"product":       true,
	"pricelevel":    true,
	"quote":         true,
	"order":         true,
	"invoice":       true,
	"campaign":      true,
	"marketinglist": true,
	"competitor":    true,
}

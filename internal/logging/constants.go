package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across packages so that
// statements, accounts and files can be traced through an import run.
const (
	FieldFile       = "file_path"
	FieldAccount    = "account"
	FieldSuffix     = "acctid_suffix"
	FieldOrg        = "org"
	FieldStatement  = "statement"
	FieldTicker     = "ticker"
	FieldSecurityID = "security_id"
	FieldCount      = "count"
	FieldError      = "error"
	FieldEntries    = "entries"
	FieldLoan       = "loan"
)

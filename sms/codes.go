package sms

//CodeTable maps gateway response codes to human readable descriptions.
//It is plain data so tables for other gateways can be supplied instead.
type CodeTable map[string]string

const (
	//SuccessCode is the canonical code the gateway returns on accepted messages
	SuccessCode = "000"
	//SuccessMarker prefixes plain-text bodies of accepted messages
	SuccessMarker = "OK"
	//CodeUnknown is used when the gateway reported an error without a code
	CodeUnknown = "unknown"
)

//DefaultCodes returns the documented response codes of the KudiSMS gateway
func DefaultCodes() CodeTable {
	return CodeTable{
		"000": "Message sent successfully",
		"100": "Invalid token provided",
		"101": "Account has been deactivated",
		"102": "Invalid gateway",
		"103": "Message contains a blocked keyword",
		"104": "Sender ID has been blocked",
		"105": "Unknown sender ID",
		"106": "Invalid phone number",
		"107": "Too many recipients",
		"108": "Insufficient credit",
		"109": "Sender ID category not approved",
		"110": "No active package on account",
		"111": "Error processing request",
		"112": "Sender ID not approved",
		"113": "Missing required parameters",
		"114": "Incomplete request",
	}
}

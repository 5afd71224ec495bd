package sms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Zyron-Tech/church-pal/util"
)

type OutcomeStatus string

const (
	StatusSuccess        OutcomeStatus = "SUCCESS"
	StatusFailure        OutcomeStatus = "FAILURE"
	StatusTransportError OutcomeStatus = "TRANSPORT_ERR"
)

//body fields recognized across gateway response shapes
const (
	statusField = "status"
	errorField  = "error"
	errnoField  = "errno"
	countField  = "count"
	priceField  = "price"
)

//RawResponse is one gateway reply as received over HTTP.
//Fields optionally carries the body already decoded by the caller,
//when nil the resolver decodes Body itself.
type RawResponse struct {
	StatusCode int
	Body       string
	Fields     map[string]interface{}
}

//Outcome is the normalized result of one send attempt
type Outcome struct {
	Status OutcomeStatus
	Code   string
	Detail string
}

func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

type ResolverConfig struct {
	//Codes maps gateway codes to descriptions, see DefaultCodes
	Codes CodeTable
	//SuccessCode is the canonical code of an accepted message
	SuccessCode string
	//SuccessMarker is the token plain-text success bodies start with
	SuccessMarker string
}

type Resolver interface {
	Resolve(raw RawResponse) Outcome
}

func NewResolver(cfg ResolverConfig) Resolver {
	if cfg.Codes == nil {
		cfg.Codes = DefaultCodes()
	}
	if cfg.SuccessCode == "" {
		cfg.SuccessCode = SuccessCode
	}
	if cfg.SuccessMarker == "" {
		cfg.SuccessMarker = SuccessMarker
	}
	return &resolver{
		codes:         cfg.Codes,
		successCode:   cfg.SuccessCode,
		successMarker: cfg.SuccessMarker,
	}
}

type resolver struct {
	codes         CodeTable
	successCode   string
	successMarker string
}

//Resolve classifies a gateway reply into an Outcome. It is total:
//any body the gateway may produce yields an Outcome, never a panic
func (r *resolver) Resolve(raw RawResponse) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = Outcome{Status: StatusFailure, Code: CodeUnknown, Detail: fmt.Sprintf("Unexpected response: %v", rec)}
		}
	}()

	//a missing 2xx means the gateway never gave a meaningful answer,
	//the body is not inspected in that case
	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		return Outcome{Status: StatusTransportError, Detail: fmt.Sprintf("HTTP %d: %s", raw.StatusCode, raw.Body)}
	}

	fields := raw.Fields
	if fields == nil {
		fields = decodeFields(raw.Body)
	}
	if fields != nil {
		return r.resolveFields(fields, raw.Body)
	}

	return r.resolveText(raw.Body)
}

func (r *resolver) resolveFields(fields map[string]interface{}, body string) Outcome {
	if status, ok := fields[statusField]; ok && strings.EqualFold(fieldAsString(status), r.successMarker) {
		return Outcome{Status: StatusSuccess, Code: r.successCode, Detail: successDetail(fields)}
	}

	_, hasError := fields[errorField]
	errno, hasErrno := fields[errnoField]
	if hasError || hasErrno {
		code := CodeUnknown
		if hasErrno {
			code = fieldAsString(errno)
		}
		return Outcome{Status: StatusFailure, Code: code, Detail: r.describe(code)}
	}

	return Outcome{Status: StatusFailure, Code: CodeUnknown, Detail: "Unexpected response: " + body}
}

func (r *resolver) resolveText(body string) Outcome {
	text := strings.TrimSpace(body)

	if strings.HasPrefix(strings.ToUpper(text), strings.ToUpper(r.successMarker)) {
		return Outcome{Status: StatusSuccess, Code: r.successCode, Detail: body}
	}

	if util.IsDecimal(text) {
		if text == r.successCode {
			return Outcome{Status: StatusSuccess, Code: text, Detail: r.describe(text)}
		}
		return Outcome{Status: StatusFailure, Code: text, Detail: r.describe(text)}
	}

	return Outcome{Status: StatusFailure, Code: CodeUnknown, Detail: "Unexpected response: " + text}
}

func (r *resolver) describe(code string) string {
	if desc, ok := r.codes[code]; ok {
		return desc
	}
	return "Unknown response code: " + code
}

func successDetail(fields map[string]interface{}) string {
	parts := []string{"message accepted"}
	if v, ok := fields[countField]; ok {
		parts = append(parts, "count="+fieldAsString(v))
	}
	if v, ok := fields[priceField]; ok {
		parts = append(parts, "cost="+fieldAsString(v))
	}
	return strings.Join(parts, " ")
}

func decodeFields(body string) map[string]interface{} {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil
	}
	return fields
}

func fieldAsString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		//json numbers decode as float64
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

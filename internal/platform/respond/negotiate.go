package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"
)

const (
	mimeJSON        = "application/json"
	mimeCBOR        = "application/cbor"
	mimeProblemJSON = "application/problem+json"
	mimeProblemCBOR = "application/problem+cbor"
)

// preference is the best Accept match found for one format.
type preference struct {
	q           float64
	specificity int
}

func (p *preference) offer(q float64, specificity int) {
	if specificity > p.specificity || (specificity == p.specificity && q > p.q) {
		p.q, p.specificity = q, specificity
	}
}

// classify reports which formats a media range matches and how specifically.
func classify(mediaType string) (isJSON, isCBOR bool, specificity int) {
	typ, sub, ok := strings.Cut(strings.ToLower(mediaType), "/")
	if !ok {
		sub = "*"
	}
	typ, sub = strings.TrimSpace(typ), strings.TrimSpace(sub)
	switch {
	case typ == "*" && sub == "*":
		return true, true, 1
	case typ != "application":
		return false, false, 0
	case sub == "*":
		return true, true, 2
	case sub == "problem+json":
		return true, false, 4
	case sub == "problem+cbor":
		return false, true, 4
	case sub == "json", strings.HasSuffix(sub, "+json"):
		return true, false, 3
	case sub == "cbor", strings.HasSuffix(sub, "+cbor"):
		return false, true, 3
	}
	return false, false, 0
}

// qValue extracts the q parameter of a media range, defaulting to 1.
func qValue(params string) float64 {
	for p := range strings.SplitSeq(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q >= 0 && q <= 1 {
			return q
		}
	}
	return 1
}

// prefersCBOR reports whether the Accept header ranks CBOR above JSON. Quality
// decides first, specificity breaks ties, and JSON wins everything else.
func prefersCBOR(accept string) bool {
	var j, c preference
	j.q, c.q = -1, -1
	for part := range strings.SplitSeq(accept, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, _ := strings.Cut(part, ";")
		q := qValue(params)
		if q == 0 {
			continue
		}
		isJSON, isCBOR, rank := classify(mediaType)
		if isJSON {
			j.offer(q, rank)
		}
		if isCBOR {
			c.offer(q, rank)
		}
	}
	if c.q <= 0 {
		return false
	}
	if c.q != j.q {
		return c.q > j.q
	}
	return c.specificity > j.specificity
}

// ensureVary adds values to the Vary header unless already listed.
func ensureVary(h http.Header, values ...string) {
	seen := make(map[string]bool)
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			seen[strings.ToLower(strings.TrimSpace(part))] = true
		}
	}
	for _, v := range values {
		if !seen[strings.ToLower(v)] {
			h.Add("Vary", v)
			seen[strings.ToLower(v)] = true
		}
	}
}

// Negotiate writes data as CBOR when the client prefers it and JSON otherwise.
func Negotiate(c *echo.Context, status int, data any) error {
	ensureVary(c.Response().Header(), "Accept")
	if prefersCBOR(c.Request().Header.Get("Accept")) {
		b, err := cbor.Marshal(data)
		if err != nil {
			return err
		}
		return c.Blob(status, mimeCBOR, b)
	}
	return c.JSON(status, data)
}

func writeProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetails) {
	ensureVary(w.Header(), "Origin", "Accept")
	if prefersCBOR(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", mimeProblemCBOR)
		w.WriteHeader(problem.Status)
		_ = cbor.NewEncoder(w).Encode(problem)
		return
	}
	w.Header().Set("Content-Type", mimeProblemJSON)
	w.WriteHeader(problem.Status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(problem)
}

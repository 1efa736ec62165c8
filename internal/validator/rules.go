package validator

import "strings"

// Rule identifiers, stable across releases. Used as metric labels and in
// machine readable CLI output.
const (
	RuleLocalTooLong             = "local_too_long"
	RuleNoSpaces                 = "no_spaces"
	RuleMissingAt                = "missing_at"
	RuleLocalLeadingDot          = "local_leading_dot"
	RuleLocalTrailingDot         = "local_trailing_dot"
	RuleLocalLeadingUnderscore   = "local_leading_underscore"
	RuleLocalTrailingUnderscore  = "local_trailing_underscore"
	RuleLocalLeadingHyphen       = "local_leading_hyphen"
	RuleLocalTrailingHyphen      = "local_trailing_hyphen"
	RuleDomainLeadingHyphen      = "domain_leading_hyphen"
	RuleDomainLeadingDot         = "domain_leading_dot"
	RuleDomainLeadingUnderscore  = "domain_leading_underscore"
	RuleLocalConsecutiveDots     = "local_consecutive_dots"
	RuleDomainConsecutiveDots    = "domain_consecutive_dots"
	RuleDomainTooLong            = "domain_too_long"
	RuleMultipleAt               = "multiple_at"
	RuleDomainMissingDot         = "domain_missing_dot"
	RuleDomainBadDotNeighbour    = "domain_bad_dot_neighbour"
	RuleExtensionNotAlphabetical = "extension_not_alphabetical"
)

type rule struct {
	ID      string
	Message string
	fails   func(a Address) bool
}

// rules is evaluated top to bottom. Order is part of the output contract.
var rules = []rule{
	{RuleLocalTooLong, "La parte local debe ser menor a 64 caracteres", func(a Address) bool {
		return length(a.Local) > MaxLocalPartLength
	}},
	{RuleNoSpaces, "El correo no puede contener espacios", func(a Address) bool {
		return strings.Contains(a.Raw, " ")
	}},
	{RuleMissingAt, "El correo debe contener una arroba", func(a Address) bool {
		return !a.HasAt
	}},
	{RuleLocalLeadingDot, "El correo no puede iniciar con un punto", func(a Address) bool {
		return strings.HasPrefix(a.Local, ".")
	}},
	{RuleLocalTrailingDot, "La parte local no puede finalizar con un punto", func(a Address) bool {
		return strings.HasSuffix(a.Local, ".")
	}},
	{RuleLocalLeadingUnderscore, "El correo no puede iniciar con un guión bajo", func(a Address) bool {
		return strings.HasPrefix(a.Local, "_")
	}},
	{RuleLocalTrailingUnderscore, "La parte local no puede finalizar con un guión bajo", func(a Address) bool {
		return strings.HasSuffix(a.Local, "_")
	}},
	{RuleLocalLeadingHyphen, "El correo no puede iniciar con un guión regular", func(a Address) bool {
		return strings.HasPrefix(a.Local, "-")
	}},
	{RuleLocalTrailingHyphen, "La parte local no puede finalizar con un guión regular", func(a Address) bool {
		return strings.HasSuffix(a.Local, "-")
	}},
	{RuleDomainLeadingHyphen, "La parte del dominio no puede iniciar con un guión regular", func(a Address) bool {
		return strings.HasPrefix(a.Domain, "-")
	}},
	{RuleDomainLeadingDot, "La parte del dominio no puede iniciar con un punto", func(a Address) bool {
		return strings.HasPrefix(a.Domain, ".")
	}},
	{RuleDomainLeadingUnderscore, "La parte del dominio no puede iniciar con un guión bajo", func(a Address) bool {
		return strings.HasPrefix(a.Domain, "_")
	}},
	{RuleLocalConsecutiveDots, "La parte local no puede contener puntos consecutivos", func(a Address) bool {
		return hasConsecutiveDots(a.Local)
	}},
	{RuleDomainConsecutiveDots, "La parte del dominio no puede contener puntos consecutivos", func(a Address) bool {
		return hasConsecutiveDots(a.Domain)
	}},
	{RuleDomainTooLong, "La parte del dominio debe contener menos de 255 caracteres", func(a Address) bool {
		return length(a.Domain) > MaxDomainPartLength
	}},
	{RuleMultipleAt, "Verifica que tu correo contenga una sola arroba", func(a Address) bool {
		return strings.Count(a.Raw, "@") > 1
	}},
	{RuleDomainMissingDot, "La parte del dominio debe incluir al menos un punto", func(a Address) bool {
		return !strings.Contains(a.Domain, ".")
	}},
	{RuleDomainBadDotNeighbour, "La parte del dominio contiene caracteres no permitidos", func(a Address) bool {
		return hasBadDotNeighbour(a.Domain)
	}},
	{RuleExtensionNotAlphabetical, "Tu extensión de dominio debería incluir solo letras", func(a Address) bool {
		c, ok := lastChar(a.Raw)
		// Nothing to judge on an empty input.
		return ok && isCaseless(c)
	}},
}

// Rules returns the rule identifiers in evaluation order.
func Rules() []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}

// Message returns the human readable message of a rule, or "" if unknown.
func Message(ruleID string) string {
	for _, r := range rules {
		if r.ID == ruleID {
			return r.Message
		}
	}
	return ""
}

package resolve

import "strings"

// agentSeparator is the bullet character Propwire-style realtor exports
// use between the agent's name and their brokerage.
const agentSeparator = "•"

// PersonName holds the two halves of a split personal name.
type PersonName struct {
	First string
	Last  string
}

// SplitPersonName splits a full name on single spaces: the first token is
// the first name, the remaining tokens joined by spaces form the last
// name. No locale-aware handling; "Mary Jo Smith" yields last name
// "Jo Smith". Empty input yields both fields empty.
func SplitPersonName(full string) PersonName {
	full = strings.TrimSpace(full)
	if full == "" {
		return PersonName{}
	}
	parts := strings.Split(full, " ")
	if len(parts) == 1 {
		return PersonName{First: parts[0]}
	}
	return PersonName{
		First: parts[0],
		Last:  strings.Join(parts[1:], " "),
	}
}

// AgentField holds the two halves of a combined "name • company" field.
type AgentField struct {
	FullName    string
	CompanyName string
}

// SplitAgentField splits a combined agent field on the first bullet
// separator. When the separator is absent the whole trimmed value is the
// name and the company is empty.
func SplitAgentField(raw string) AgentField {
	name, company, found := strings.Cut(raw, agentSeparator)
	if !found {
		return AgentField{FullName: strings.TrimSpace(raw)}
	}
	return AgentField{
		FullName:    strings.TrimSpace(name),
		CompanyName: strings.TrimSpace(company),
	}
}

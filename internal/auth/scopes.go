package auth

// Known OAuth scopes used by the shift tracking service.
const (
	ScopeShiftsWrite = "shifts:write"
	ScopeShiftsRead  = "shifts:read"
)

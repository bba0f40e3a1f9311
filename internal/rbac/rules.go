package rbac

// Default route-level policy. What a role sees inside a form is governed
// separately by the per-role grant tables; these permissions only gate which
// endpoints the role may call at all.
var RolePermissions = map[string][]string{
	"unit": {
		"form:view",
		"stats:save",
		"catalog:view",
		"user:change_password",
	},
	"reviewer": {
		"form:view",
		"catalog:view",
		"events:view",
	},
	"admin": {
		"*", // everything
	},
}

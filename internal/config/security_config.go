package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAdmin                       // Admin access token required
)

// Route names registered on the HTTP router.
const (
	RouteHealth          = "health"
	RouteStoreCopy       = "store.copy"
	RouteListProducts    = "store.listProducts"
	RouteGetProduct      = "store.getProduct"
	RouteEvaluateOffer   = "store.evaluateOffer"
	RouteAddLineItem     = "store.addLineItem"
	RouteCartTotals      = "store.cartTotals"
	RouteCreateDrone     = "admin.createDrone"
	RouteDeleteDrone     = "admin.deleteDrone"
	RouteProductsCreated = "admin.productsCreated"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Storefront - Public
	RouteHealth:        SecurityPublic,
	RouteStoreCopy:     SecurityPublic,
	RouteListProducts:  SecurityPublic,
	RouteGetProduct:    SecurityPublic,
	RouteEvaluateOffer: SecurityPublic,
	RouteAddLineItem:   SecurityPublic,
	RouteCartTotals:    SecurityPublic,

	// Admin - Access Protected
	RouteCreateDrone:     SecurityAdmin,
	RouteDeleteDrone:     SecurityAdmin,
	RouteProductsCreated: SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}

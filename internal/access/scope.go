package access

import (
	"errors"
	"fmt"
)

// Guard failures surfaced to the request layer. Denial and absence of an
// actor are distinct conditions and must not be conflated.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

// CityScope is the resolved city visibility for an actor. An unrestricted
// scope sees every city; a restricted scope sees exactly the actor's own
// city.
type CityScope struct {
	Restricted    bool
	AllowedCities map[string]struct{}
}

// Allows reports whether the scope permits the given city.
func (s CityScope) Allows(city string) bool {
	if !s.Restricted {
		return true
	}
	_, ok := s.AllowedCities[city]
	return ok
}

// ResolveCityScope derives the city scope for an actor. access:all_cities
// supersedes access:city_restricted when a role holds both; an actor with
// neither scope permission defaults open, since only capability permissions
// gate actions.
func (e *Engine) ResolveCityScope(actor Actor) CityScope {
	if e.HasPermission(actor.Role, PermissionAccessAllCities) {
		return CityScope{}
	}
	if e.HasPermission(actor.Role, PermissionAccessCityRestricted) && actor.City != "" {
		return CityScope{
			Restricted:    true,
			AllowedCities: map[string]struct{}{actor.City: {}},
		}
	}
	return CityScope{}
}

// RequirePermission is the guard the request layer calls before a gated
// action. A nil actor means no authenticated context.
func (e *Engine) RequirePermission(actor *Actor, permission Permission) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !e.HasPermission(actor.Role, permission) {
		return fmt.Errorf("%w: role %q lacks %q", ErrPermissionDenied, actor.Role, permission)
	}
	return nil
}

package services

import "context"

// resolveMe returns the caller's profile, null when no row exists
func (g *Gateway) resolveMe(ctx context.Context, callerID string) (interface{}, error) {
	profile, err := g.profiles.GetByID(ctx, callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, nil
	}
	return profile.ToResponse(), nil
}

// resolveMyRole returns the caller's role row, null when no row exists
func (g *Gateway) resolveMyRole(ctx context.Context, callerID string) (interface{}, error) {
	role, err := g.roles.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	if role == nil {
		return nil, nil
	}
	return role.ToResponse(), nil
}

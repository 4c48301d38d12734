// Package platform wires the per-platform clients into a lookup registry.
package platform

import (
	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/service"
)

type registry struct {
	clients map[entity.Platform]service.PlatformClient
}

// NewRegistry indexes the given clients by the platform they report.
func NewRegistry(clients ...service.PlatformClient) service.PlatformRegistry {
	indexed := make(map[entity.Platform]service.PlatformClient, len(clients))
	for _, client := range clients {
		indexed[client.Platform()] = client
	}

	return &registry{clients: indexed}
}

// Client returns the client for the platform.
func (r *registry) Client(platform entity.Platform) (service.PlatformClient, error) {
	client, ok := r.clients[platform]
	if !ok {
		return nil, domainerrors.ErrUnsupportedPlatform.WrapMessage("no client registered for platform " + platform.String())
	}

	return client, nil
}

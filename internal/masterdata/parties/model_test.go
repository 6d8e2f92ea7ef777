package parties

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routeledger/routeledger/internal/shared"
)

func TestRequireRole(t *testing.T) {
	client := Party{Name: "Acme Mills", Role: RoleClient}
	vendor := Party{Name: "Roadside Garage", Role: RoleOther}
	workshop := Party{Name: "City Motors", Role: RoleWorkshop}

	assert.NoError(t, RequireRole(client, RoleClient))
	assert.NoError(t, RequireRole(workshop, RoleWorkshop))

	// Miscellaneous vendors may fill a workshop slot but nothing else.
	assert.NoError(t, RequireRole(vendor, RoleWorkshop))
	assert.ErrorIs(t, RequireRole(vendor, RoleClient), shared.ErrInvalidRole)

	assert.ErrorIs(t, RequireRole(client, RoleTransporter), shared.ErrInvalidRole)
}

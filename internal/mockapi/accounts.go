package mockapi

import (
	"fmt"

	"github.com/dukaworks/console/internal/console/domain"
	"github.com/dukaworks/console/pkg/cryptox"
)

// Account is a seeded staff account for the offline backend.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	// Roles are stored in the mixed shapes the production backend emits,
	// so the console's normalizer gets exercised end to end.
	Roles []domain.RawRole

	// TOTPSecret, when set, requires a one-time code on login.
	TOTPSecret string
}

// SeedTOTPSecret is the fixed base32 secret of the seeded super admin.
// Exported so tests and dev tooling can mint valid codes.
const SeedTOTPSecret = "JBSWY3DPEHPK3PXP"

type seedSpec struct {
	id       string
	email    string
	name     string
	password string
	roles    []domain.RawRole
	totp     string
}

var seeds = []seedSpec{
	{
		id:       "u_root",
		email:    "root@duka.example",
		name:     "Wanjiru Root",
		password: "root-password",
		roles:    []domain.RawRole{domain.NewRawRoleObject(domain.RoleObject{Code: "super_admin"})},
		totp:     SeedTOTPSecret,
	},
	{
		id:       "u_admin",
		email:    "admin@duka.example",
		name:     "Otieno Admin",
		password: "admin-password",
		roles:    []domain.RawRole{domain.NewRawRole("Admin")},
	},
	{
		id:       "u_ops",
		email:    "ops@duka.example",
		name:     "Chebet Ops",
		password: "ops-password",
		roles: []domain.RawRole{
			domain.NewRawRoleObject(domain.RoleObject{RoleCode: "sub admin"}),
		},
	},
	{
		id:       "u_vendor",
		email:    "vendor@duka.example",
		name:     "Njeri Vendor",
		password: "vendor-password",
		roles:    []domain.RawRole{domain.NewRawRole("vendor")},
	},
}

// SeedAccounts hashes the seed passwords and returns the account set
// keyed by email.
func SeedAccounts() (map[string]*Account, error) {
	accounts := make(map[string]*Account, len(seeds))
	for _, s := range seeds {
		hash, err := cryptox.HashPassword(s.password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password for %s: %w", s.email, err)
		}
		accounts[s.email] = &Account{
			ID:           s.id,
			Email:        s.email,
			Name:         s.name,
			PasswordHash: hash,
			Roles:        s.roles,
			TOTPSecret:   s.totp,
		}
	}
	return accounts, nil
}

// file: internals/middlewares/auth/jwt_auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"
)

// Key locals yang diisi AuthJWT
const (
	LocUserID      = "user_id"
	LocRole        = "userRole"
	LocRolesGlobal = "roles_global"
	LocClaims      = "jwt_claims"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // true = token sudah di-revoke
	AllowCookieFallback bool                                // pakai cookie access_token jika tidak ada Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Authorization: Bearer xxx (atau cookie)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) blacklist (opsional). Error checker tidak memblok request.
		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(raw); err == nil && black {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Token revoked")
			}
		}

		// 3) parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(LocClaims, claims)

		// user_id: id > sub > user_id
		for _, k := range []string{"id", "sub", "user_id"} {
			if v := strClaim(claims, k); v != "" {
				c.Locals(LocUserID, v)
				break
			}
		}

		roles := readStringSlice(claims["roles_global"])
		if r := strings.ToLower(strClaim(claims, "role")); r != "" {
			roles = append(roles, r)
		}
		c.Locals(LocRolesGlobal, roles)
		c.Locals(LocRole, pickRole(roles))

		return c.Next()
	}
}

// pickRole: role paling tinggi untuk guard lama yang baca "userRole"
func pickRole(roles []string) string {
	has := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		has[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	for _, w := range constants.RolePriority {
		if _, ok := has[w]; ok {
			return w
		}
	}
	return constants.RoleUser
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// []string atau []any → []string lowercase, kosong dibuang
func readStringSlice(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

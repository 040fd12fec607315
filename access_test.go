package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessMerge(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(AccessAllowed, AccessUndefined.merge(AccessAllowed))
	assert.Equal(AccessAllowed, AccessAllowed.merge(AccessUndefined))
	assert.Equal(AccessAllowed, AccessForbidden.merge(AccessAllowed))
	assert.Equal(AccessUndefined, AccessUndefined.merge(AccessUndefined))
	assert.Equal(AccessForbidden, AccessUndefined.merge(AccessForbidden))
	assert.Equal(AccessForbidden, AccessAllowed.merge(AccessForbidden))

	rolePermitted := Role{Permissions: map[PermissionName]bool{PermissionProfileEditAny: true}}
	roleUndefined := Role{Permissions: map[PermissionName]bool{}}
	roleForbidden := Role{Permissions: map[PermissionName]bool{PermissionProfileEditAny: false}}

	cases := []struct {
		roles  Roles
		access Access
	}{
		{Roles{}, AccessUndefined},
		{Roles{roleUndefined}, AccessUndefined},
		{Roles{rolePermitted}, AccessAllowed},
		{Roles{roleUndefined, rolePermitted}, AccessAllowed},
		{Roles{rolePermitted, roleUndefined, roleForbidden}, AccessForbidden},
		{Roles{roleForbidden, rolePermitted}, AccessAllowed},
	}
	for i, tc := range cases {
		assert.Equal(tc.access, tc.roles.Access(PermissionProfileEditAny), "case %d", i)
	}
}

func TestRolesByIds(t *testing.T) {
	assert := assert.New(t)

	roles := RolesByIds([]RoleId{RoleIdAdmin, RoleId("UNDEFINED role")})
	assert.Equal(Roles{AllRoles[RoleIdAdmin]}, roles)
	assert.Equal([]RoleId{RoleIdAdmin}, roles.Ids())
	assert.Equal(Roles{}, RolesByIds(nil))
}

func TestCanEditProfile(t *testing.T) {
	assert := assert.New(t)

	owner := User{Id: 1, Username: "owner"}
	stranger := User{Id: 2, Username: "stranger"}
	admin := User{Id: 3, Username: "admin", Roles: Roles{AllRoles[RoleIdAdmin]}}
	profile := Profile{Id: 10, Owner: owner}

	assert.True(owner.CanEditProfile(profile))
	assert.False(stranger.CanEditProfile(profile))
	assert.True(admin.CanEditProfile(profile))
}

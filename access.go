package profiles

type Access byte

const (
	AccessUndefined Access = 0
	AccessForbidden Access = 1
	AccessAllowed   Access = 2
)

func (a Access) merge(b Access) Access {
	switch {
	case a == AccessUndefined:
		return b
	case b == AccessUndefined:
		return a
	default:
		return b
	}
}

type PermissionName string

// Edit profiles owned by other accounts.
const PermissionProfileEditAny PermissionName = "profile.edit.any"

type RoleId string

type Role struct {
	Id          RoleId
	Permissions map[PermissionName]bool
}

var RoleIdAdmin RoleId = "admin"

var AllRoles map[RoleId]Role = mapRolesById(
	Role{
		Id: RoleIdAdmin,
		Permissions: map[PermissionName]bool{
			PermissionProfileEditAny: true,
		},
	},
)

func mapRolesById(roles ...Role) map[RoleId]Role {
	rolesMap := make(map[RoleId]Role)
	for _, role := range roles {
		if _, ok := rolesMap[role.Id]; ok {
			panic("Duplicated role id: `" + role.Id + "`!")
		}
		rolesMap[role.Id] = role
	}
	return rolesMap
}

// RolesByIds resolves role ids, silently skipping unknown ones.
func RolesByIds(ids []RoleId) Roles {
	roles := make(Roles, 0, len(ids))
	for _, id := range ids {
		if role, ok := AllRoles[id]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func (role Role) Access(name PermissionName) Access {
	hasPermission, ok := role.Permissions[name]
	switch {
	case !ok:
		return AccessUndefined
	case hasPermission:
		return AccessAllowed
	default:
		return AccessForbidden
	}
}

type Roles []Role

func (roles Roles) Access(permission PermissionName) Access {
	access := AccessUndefined
	for _, role := range roles {
		access = access.merge(role.Access(permission))
	}
	return access
}

func (roles Roles) Ids() []RoleId {
	ids := make([]RoleId, len(roles))
	for i, role := range roles {
		ids[i] = role.Id
	}
	return ids
}

// CanEditProfile reports whether the user may change the given profile.
func (u User) CanEditProfile(p Profile) bool {
	return p.Owner.Id == u.Id || u.Roles.Access(PermissionProfileEditAny) == AccessAllowed
}

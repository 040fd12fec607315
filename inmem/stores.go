package inmem

// Stores groups in-memory stores wired the way the postgres ones are: a
// registered account gets its profile and an activity entry, a deleted
// account loses its profile.
type Stores struct {
	Users      *UserStore
	Profiles   *ProfileStore
	Activities *ActivityStore
}

func NewStores() Stores {
	profileStore := NewProfileStore()
	activityStore := NewActivityStore()
	userStore := NewUserStore()
	userStore.OnAccountCreated = []AccountCreatedHandler{profileStore.Provision, activityStore.LogAccountCreated}
	userStore.OnAccountDeleted = []AccountDeletedHandler{profileStore.DeleteByOwner}
	return Stores{
		Users:      userStore,
		Profiles:   profileStore,
		Activities: activityStore,
	}
}

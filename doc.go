// Package prefroom is the runtime support package imported by code that the
// prefroom generator emits.
//
// Generated preference entities wrap a Store obtained from a Context, and
// generated components aggregate entities. Both keep their single instance
// in the Registry owned by the Context, so initialization order and
// ownership are explicit:
//
//	ctx := prefroom.NewContext()
//	user := prefs.Preference_UserPrefs_GetInstance(ctx)
//	user.PutAge(30)
//
//	prefs.PreferenceComponent_AppComponent_Init(ctx)
//	app := prefs.PreferenceComponent_AppComponent_GetInstance(ctx)
//	_ = app.UserPrefs().GetAge()
//
// A component accessed before its Init function was called panics with a
// *NotInitializedError.
package prefroom

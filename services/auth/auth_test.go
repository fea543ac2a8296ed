package auth

import (
	"context"
	"testing"

	"stockmanager/config"
	"stockmanager/store"
)

func newTestService(t *testing.T, creds Credentials) (*Service, *store.Store) {
	t.Helper()
	db, err := config.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	if err := config.CreateTables(db, nil); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	st := store.New(db, nil)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, creds, nil), st
}

func TestRegisterRejectsExistingUsername(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)

	sess := NewSession(nil)
	first, err := svc.Register(ctx, sess, "bob", "secret", "Bob", "bob@example.com")
	if err != nil || first == nil {
		t.Fatalf("Register = (%v, %v)", first, err)
	}
	if first.Role != "user" || first.ID[0] != 'U' || len(first.ID) != 9 {
		t.Errorf("unexpected new user %+v", first)
	}
	if sess.User() != first {
		t.Error("register should log the session in")
	}

	second, err := svc.Register(ctx, NewSession(nil), "bob", "other", "Other Bob", "")
	if err != nil {
		t.Fatalf("duplicate Register error: %v", err)
	}
	if second != nil {
		t.Fatalf("duplicate Register returned %+v", second)
	}

	users, err := st.GetAllUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("GetAllUsers = (%d, %v), want 1", len(users), err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	if _, err := svc.Register(ctx, NewSession(nil), "carol", "pa55", "Carol", ""); err != nil {
		t.Fatal(err)
	}

	sess := NewSession(nil)
	user, err := svc.Login(ctx, sess, "carol", "pa55")
	if err != nil || user == nil || user.Username != "carol" {
		t.Fatalf("Login = (%v, %v)", user, err)
	}
	if !sess.LoggedIn() || sess.IsAdmin() {
		t.Fatal("session should hold a non-admin user")
	}

	other := NewSession(nil)
	if user, err := svc.Login(ctx, other, "carol", "wrong"); err != nil || user != nil {
		t.Fatalf("wrong password Login = (%v, %v)", user, err)
	}
	if other.LoggedIn() {
		t.Fatal("failed login must not populate the session")
	}
	if user, err := svc.Login(ctx, other, "nobody", "pa55"); err != nil || user != nil {
		t.Fatalf("unknown user Login = (%v, %v)", user, err)
	}

	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sess.LoggedIn() {
		t.Fatal("logout did not clear the session")
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	sess := NewSession(nil)
	if _, err := svc.Register(ctx, sess, "dave", "old", "Dave", ""); err != nil {
		t.Fatal(err)
	}

	if ok, err := svc.ChangePassword(ctx, sess, "not-old", "new"); err != nil || ok {
		t.Fatalf("mismatched old password = (%v, %v), want false", ok, err)
	}
	if ok, err := svc.ChangePassword(ctx, sess, "old", "new"); err != nil || !ok {
		t.Fatalf("ChangePassword = (%v, %v)", ok, err)
	}

	if user, _ := svc.Login(ctx, NewSession(nil), "dave", "old"); user != nil {
		t.Fatal("old password still accepted")
	}
	if user, _ := svc.Login(ctx, NewSession(nil), "dave", "new"); user == nil {
		t.Fatal("new password rejected")
	}

	if ok, _ := svc.ChangePassword(ctx, NewSession(nil), "new", "newer"); ok {
		t.Fatal("change without a session should fail")
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)

	if ok, err := svc.UpdateProfile(ctx, NewSession(nil), "X", "x@example.com"); ok || err != nil {
		t.Fatalf("logged-out UpdateProfile = (%v, %v)", ok, err)
	}

	sess := NewSession(nil)
	user, _ := svc.Register(ctx, sess, "erin", "pw", "Erin", "")
	if ok, err := svc.UpdateProfile(ctx, sess, "Erin Smith", "erin@example.com"); err != nil || !ok {
		t.Fatalf("UpdateProfile = (%v, %v)", ok, err)
	}
	if sess.User().FullName != "Erin Smith" {
		t.Error("session user not updated")
	}
	stored, _ := st.GetUserByID(ctx, user.ID)
	if stored.Email != "erin@example.com" {
		t.Errorf("stored email = %q", stored.Email)
	}
}

func TestBcryptCredentials(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, BcryptCredentials{Cost: 4})

	user, err := svc.Register(ctx, NewSession(nil), "frank", "hunter2", "Frank", "")
	if err != nil || user == nil {
		t.Fatalf("Register = (%v, %v)", user, err)
	}
	stored, _ := st.GetUserByID(ctx, user.ID)
	if stored.Password == "hunter2" {
		t.Fatal("password stored in clear text under bcrypt scheme")
	}
	if got, _ := svc.Login(ctx, NewSession(nil), "frank", "hunter2"); got == nil {
		t.Fatal("bcrypt login failed")
	}
	if got, _ := svc.Login(ctx, NewSession(nil), "frank", "hunter3"); got != nil {
		t.Fatal("bcrypt accepted a wrong password")
	}
}

func TestNewCredentials(t *testing.T) {
	if c, err := NewCredentials("plain"); err != nil || c.Verify("a", "b") {
		t.Fatalf("plain = (%v, %v)", c, err)
	}
	if _, err := NewCredentials("bcrypt"); err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if _, err := NewCredentials("rot13"); err == nil {
		t.Fatal("unknown scheme accepted")
	}
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	user, _ := svc.Register(ctx, NewSession(nil), "gina", "pw", "Gina", "")

	sess, err := svc.Resume(ctx, user.ID, 0)
	if err != nil || sess == nil || sess.User().Username != "gina" {
		t.Fatalf("Resume = (%v, %v)", sess, err)
	}
	if sess, err := svc.Resume(ctx, "missing", 0); sess != nil || err != nil {
		t.Fatalf("Resume(missing) = (%v, %v)", sess, err)
	}
}

func TestLogoutRevokesEarlierTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	user, _ := svc.Register(ctx, NewSession(nil), "hank", "pw", "Hank", "")

	sess, err := svc.Resume(ctx, user.ID, user.TokenVersion)
	if err != nil || sess == nil {
		t.Fatalf("Resume before logout = (%v, %v)", sess, err)
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sess, err := svc.Resume(ctx, user.ID, user.TokenVersion); sess != nil || err != nil {
		t.Fatalf("Resume after logout = (%v, %v), want nil", sess, err)
	}

	fresh, err := svc.Resume(ctx, user.ID, user.TokenVersion+1)
	if err != nil || fresh == nil {
		t.Fatalf("Resume at the new version = (%v, %v)", fresh, err)
	}
	if ok, err := svc.ChangePassword(ctx, fresh, "pw", "pw2"); err != nil || !ok {
		t.Fatalf("ChangePassword = (%v, %v)", ok, err)
	}
	if fresh.User().TokenVersion != user.TokenVersion+2 {
		t.Fatalf("session token version = %d, want %d", fresh.User().TokenVersion, user.TokenVersion+2)
	}
	if sess, _ := svc.Resume(ctx, user.ID, user.TokenVersion+1); sess != nil {
		t.Fatal("password change must revoke earlier tokens")
	}
}

func TestNilSession(t *testing.T) {
	var sess *Session
	if sess.LoggedIn() || sess.IsAdmin() || sess.User() != nil {
		t.Fatal("nil session should behave as logged out")
	}
	sess.Logout()
}

func TestServiceCredentialsDefaultsToPlain(t *testing.T) {
	svc := NewService(nil, nil, nil)
	stored, err := svc.Credentials().Hash("admin123")
	if err != nil || stored != "admin123" {
		t.Fatalf("Hash = (%q, %v), want the plain password", stored, err)
	}

	bcryptSvc := NewService(nil, BcryptCredentials{Cost: 4}, nil)
	if _, ok := bcryptSvc.Credentials().(BcryptCredentials); !ok {
		t.Fatalf("Credentials() = %T, want BcryptCredentials", bcryptSvc.Credentials())
	}
}

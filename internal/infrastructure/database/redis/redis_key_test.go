package redis

import "testing"

func TestGenerateKey(t *testing.T) {
	rkg := NewRedisKeyGenerator("production")

	tests := []struct {
		name       string
		pattern    string
		identifier []string
		want       string
		wantErr    bool
	}{
		{
			name:       "session key",
			pattern:    "auth_session",
			identifier: []string{"tok-123"},
			want:       "clinic_production_auth_session:tok-123",
		},
		{
			name:       "composite identifier",
			pattern:    "auth_login_failures",
			identifier: []string{"a@b.com", "10.0.0.1"},
			want:       "clinic_production_auth_login_failures:a@b.com_10.0.0.1",
		},
		{
			name:    "no identifier",
			pattern: "auth_user_sessions",
			want:    "clinic_production_auth_user_sessions",
		},
		{
			name:    "unknown pattern",
			pattern: "nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rkg.GenerateKey(tt.pattern, tt.identifier...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GenerateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmptyEnvironmentDefaultsToDevelopment(t *testing.T) {
	rkg := NewRedisKeyGenerator("")
	if got := rkg.SessionKey("t"); got != "clinic_development_auth_session:t" {
		t.Errorf("SessionKey() = %q", got)
	}
}

func TestKeyHelpers(t *testing.T) {
	rkg := NewRedisKeyGenerator("test")

	if got := rkg.SessionKey("abc"); got != "clinic_test_auth_session:abc" {
		t.Errorf("SessionKey() = %q", got)
	}
	if got := rkg.UserSessionsKey("u1"); got != "clinic_test_auth_user_sessions:u1" {
		t.Errorf("UserSessionsKey() = %q", got)
	}
	if got := rkg.LoginFailuresKey("a@b.com", "127.0.0.1"); got != "clinic_test_auth_login_failures:a@b.com_127.0.0.1" {
		t.Errorf("LoginFailuresKey() = %q", got)
	}
}

func TestGetTTL(t *testing.T) {
	rkg := NewRedisKeyGenerator("test")

	ttl, err := rkg.GetTTL("auth_session")
	if err != nil {
		t.Fatalf("GetTTL() error: %v", err)
	}
	if ttl != 86400 {
		t.Errorf("GetTTL(auth_session) = %d, want 86400", ttl)
	}

	if _, err := rkg.GetTTL("unknown"); err == nil {
		t.Error("GetTTL(unknown) expected error")
	}
}

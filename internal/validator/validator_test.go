package validator

import "testing"

func TestValidator_RegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "Alex Morgan", Email: "alex@nexus.com", Password: "password123"}, false},
		{"short name", RegisterRequest{Name: "A", Email: "alex@nexus.com", Password: "password123"}, true},
		{"bad email", RegisterRequest{Name: "Alex", Email: "not-an-email", Password: "password123"}, true},
		{"short password", RegisterRequest{Name: "Alex", Email: "alex@nexus.com", Password: "12345"}, true},
		{"missing everything", RegisterRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidator_CategoryRules(t *testing.T) {
	v := New()

	valid := CreateIdeaRequest{Title: "Idea", Description: "d", Category: "Team Culture"}
	if errs := v.Validate(&valid); errs != nil {
		t.Errorf("Expected valid category, got %v", errs)
	}

	invalid := CreateIdeaRequest{Title: "Idea", Description: "d", Category: "Wild Guess"}
	errs := v.Validate(&invalid)
	if errs == nil {
		t.Fatal("Expected category validation error")
	}
	if errs[0].Tag != "idea_category" {
		t.Errorf("Expected idea_category tag, got %s", errs[0].Tag)
	}
}

func TestValidator_UpdateProgressRequest(t *testing.T) {
	v := New()

	zero := 0
	if errs := v.Validate(&UpdateProgressRequest{Progress: &zero}); errs != nil {
		t.Errorf("Explicit zero progress must be valid, got %v", errs)
	}

	over := 101
	if errs := v.Validate(&UpdateProgressRequest{Progress: &over}); errs == nil {
		t.Error("Expected error for progress over 100")
	}

	if errs := v.Validate(&UpdateProgressRequest{}); errs == nil {
		t.Error("Expected error for absent progress")
	}
}

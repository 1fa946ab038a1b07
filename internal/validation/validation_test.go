package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "empty email",
			email:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			email:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "exactly 8 characters",
			password: "12345678",
			wantErr:  false,
		},
		{
			name:     "too short",
			password: "1234567",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:    "valid name",
			value:   "Sam",
			wantErr: false,
		},
		{
			name:    "empty name",
			value:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			value:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{
			name:    "minimum age",
			age:     3,
			wantErr: false,
		},
		{
			name:    "maximum age",
			age:     18,
			wantErr: false,
		},
		{
			name:    "typical age",
			age:     8,
			wantErr: false,
		},
		{
			name:    "too young",
			age:     2,
			wantErr: true,
		},
		{
			name:    "too old",
			age:     19,
			wantErr: true,
		},
		{
			name:    "zero",
			age:     0,
			wantErr: true,
		},
		{
			name:    "negative",
			age:     -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAge(tt.age)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAge(%d) error = %v, wantErr %v", tt.age, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGrade(t *testing.T) {
	tests := []struct {
		name    string
		grade   string
		wantErr bool
	}{
		{
			name:    "known grade",
			grade:   "3rd Grade",
			wantErr: false,
		},
		{
			name:    "kindergarten",
			grade:   "Kindergarten",
			wantErr: false,
		},
		{
			name:    "unknown grade",
			grade:   "13th Grade",
			wantErr: true,
		},
		{
			name:    "empty grade",
			grade:   "",
			wantErr: true,
		},
		{
			name:    "case mismatch",
			grade:   "3rd grade",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrade(tt.grade)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrade(%q) error = %v, wantErr %v", tt.grade, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScoreAndMinutes(t *testing.T) {
	if err := ValidateScore(0); err != nil {
		t.Errorf("ValidateScore(0) error = %v, want nil", err)
	}
	if err := ValidateScore(-1); err == nil {
		t.Error("ValidateScore(-1) expected error")
	}
	if err := ValidateMinutes(0); err != nil {
		t.Errorf("ValidateMinutes(0) error = %v, want nil", err)
	}
	if err := ValidateMinutes(-5); err == nil {
		t.Error("ValidateMinutes(-5) expected error")
	}
}

package oracle

import "testing"

func TestASCII_IsClassWord(t *testing.T) {
	var o ASCII

	tests := []struct {
		ch   byte
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'5', true},
		{'_', true},
		{' ', false},
		{'.', false},
		{'\n', false},
	}

	for _, tt := range tests {
		if got := o.IsClass(tt.ch, ClassWord); got != tt.want {
			t.Errorf("IsClass(%q, ClassWord) = %v, want %v", tt.ch, got, tt.want)
		}
	}
}

func TestASCII_Translate(t *testing.T) {
	var o ASCII

	if got := o.Translate('A', true); got != 'a' {
		t.Errorf("Translate('A', true) = %q, want 'a'", got)
	}
	if got := o.Translate('A', false); got != 'A' {
		t.Errorf("Translate('A', false) = %q, want 'A'", got)
	}
	if got := o.Translate('5', true); got != '5' {
		t.Errorf("Translate('5', true) = %q, want '5'", got)
	}
}

func TestASCII_IsSeparator(t *testing.T) {
	var o ASCII

	for _, ch := range []byte{'\n', '\r'} {
		if !o.IsSeparator(ch) {
			t.Errorf("IsSeparator(%q) = false, want true", ch)
		}
	}
	if o.IsSeparator('a') {
		t.Errorf("IsSeparator('a') = true, want false")
	}
}

func TestASCII_IsCombining(t *testing.T) {
	var o ASCII
	if o.IsCombining('a') {
		t.Errorf("IsCombining('a') = true, want false")
	}
}

package extract

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "spanish cv",
			text: "Experiencia profesional como ingeniero de seguridad. Educación: universidad, maestría. Habilidades y certificaciones.",
			want: "es",
		},
		{
			name: "english cv",
			text: "Professional experience as a security engineer. Education: university, master degree. Skills and certifications. Worked on technical projects.",
			want: "en",
		},
		{
			name: "empty text defaults to english",
			text: "",
			want: "en",
		},
		{
			name: "no keywords defaults to english",
			text: "zzz qqq 12345",
			want: "en",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Fatalf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

package extractor

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run(`line endings and whitespace check`, func(t *testing.T) {
		got := Normalize("  Jane\r\nDoe\r\rGo\t\tdeveloper   \n\n\nSkills:  Go  ")
		require.Equal(t, "Jane\nDoe\nGo developer \nSkills: Go", got)
	})

	t.Run(`empty check`, func(t *testing.T) {
		require.Equal(t, "", Normalize(" \r\n\t "))
	})
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"jane_doe-resume.xyz": "Jane Doe",
		"JOHN-SMITH_CV.pdf":   "John Smith",
		"maria garcia.docx":   "Maria Garcia",
		"cv_2024.pdf":         "John Doe",
		"":                    "John Doe",
		"анна_иванова.txt":    "Анна Иванова",
	}
	for fileName, expected := range cases {
		require.Equal(t, expected, DisplayName(fileName), fileName)
	}
	require.Equal(t, "jane.doe@example.com", DerivedEmail("Jane Doe"))
}

func TestExtract(t *testing.T) {
	i := impl{}

	t.Run(`txt is normalized check`, func(t *testing.T) {
		res := i.Extract("cv.txt", []byte("Jane Doe\r\n\r\nGo   developer"))
		require.False(t, res.Fallback)
		require.Equal(t, "Jane Doe\nGo developer", res.Text)
	})

	t.Run(`empty txt uses fallback check`, func(t *testing.T) {
		res := i.Extract("jane_doe.txt", []byte("  \n "))
		require.True(t, res.Fallback)
		require.True(t, strings.HasPrefix(res.Text, "Jane Doe\nEmail: jane.doe@example.com"))
	})

	t.Run(`binary dump uses fallback check`, func(t *testing.T) {
		res := i.Extract("jane_doe.txt", []byte("%PDF-1.7 \x00\x01 garbage"))
		require.True(t, res.Fallback)
		require.NotContains(t, res.Text, "%PDF")
	})

	t.Run(`unsupported extension uses fallback from file name check`, func(t *testing.T) {
		res := i.Extract("jane_doe-resume.xyz", []byte("whatever"))
		require.True(t, res.Fallback)
		require.True(t, strings.HasPrefix(res.Text, "Jane Doe\n"))
		require.Contains(t, res.Text, "jane.doe@example.com")
	})

	t.Run(`corrupt pdf uses fallback check`, func(t *testing.T) {
		res := i.Extract("jane.pdf", []byte("not a pdf at all"))
		require.True(t, res.Fallback)
		require.NotEmpty(t, res.Text)
	})

	t.Run(`corrupt docx uses fallback check`, func(t *testing.T) {
		res := i.Extract("jane.docx", []byte("PK broken"))
		require.True(t, res.Fallback)
		require.NotEmpty(t, res.Text)
	})

	t.Run(`docx text check`, func(t *testing.T) {
		res := i.Extract("jane.docx", buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go &amp; SQL</w:t><w:tab/><w:t>developer</w:t></w:r></w:p></w:body></w:document>`))
		require.False(t, res.Fallback, res.Reason)
		require.Equal(t, "Jane Doe\nGo & SQL developer", res.Text)
	})

	t.Run(`result is never empty check`, func(t *testing.T) {
		for _, name := range []string{"a.txt", "a.pdf", "a.docx", "a.odt", "noext"} {
			res := i.Extract(name, nil)
			require.NotEmpty(t, res.Text, name)
		}
	})
}

func TestAllowedExtension(t *testing.T) {
	require.True(t, AllowedExtension("cv.PDF"))
	require.True(t, AllowedExtension("cv.docx"))
	require.True(t, AllowedExtension("cv.txt"))
	require.False(t, AllowedExtension("cv.doc"))
	require.False(t, AllowedExtension("cv"))
}

func buildDocx(t *testing.T, documentXML string) []byte {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	files := map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<Relationships></Relationships>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.Nil(t, err)
		_, err = w.Write([]byte(body))
		require.Nil(t, err)
	}
	require.Nil(t, zw.Close())
	return buf.Bytes()
}

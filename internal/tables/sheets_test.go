package tables

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0", want: "1AbC-d_9"},
		{in: "https://docs.google.com/spreadsheets/d/1AbC-d_9", want: "1AbC-d_9"},
		{in: " 1AbC-d_9 ", want: "1AbC-d_9"},
		{in: "", wantErr: true},
		{in: "https://example.com/sheet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SpreadsheetID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteSheetTitle(t *testing.T) {
	assert.Equal(t, "'Centres'", quoteSheetTitle("Centres"))
	assert.Equal(t, "'Farmer''s sheet'", quoteSheetTitle("Farmer's sheet"))
}

func newSheetsTestServer(t *testing.T, sheetTitles []string, values map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := r.URL.Path
		assert.True(t, strings.HasPrefix(path, "/v4/spreadsheets/sheet-123"), path)

		if i := strings.Index(path, "/values/"); i >= 0 {
			title := strings.Trim(path[i+len("/values/"):], "'")
			body, ok := values[title]
			if !ok {
				http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(body))
			return
		}

		var sheets []string
		for _, title := range sheetTitles {
			sheets = append(sheets, `{"properties":{"title":"`+title+`"}}`)
		}
		_, _ = w.Write([]byte(`{"sheets":[` + strings.Join(sheets, ",") + `]}`))
	}))
}

func TestSheetsSourceTables(t *testing.T) {
	ts := newSheetsTestServer(t, []string{"Centres", "Commods"}, map[string]string{
		"Centres": `{"range":"Centres!A1:B4","majorDimension":"ROWS","values":[["HS Code","Centers"],["1006","11"],["1006","12"],["1001"]]}`,
		"Commods": `{"range":"Commods!A1:B3","majorDimension":"ROWS","values":[["Name","HS Code"],["Rice","1006"],["Wheat","1001"]]}`,
	})
	defer ts.Close()

	src, err := NewSheetsSource(context.Background(),
		"https://docs.google.com/spreadsheets/d/sheet-123/edit", "",
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	centres, commods, err := src.Tables(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"HS Code", "Centers"}, centres.Header)
	assert.Equal(t, [][]string{{"1006", "11"}, {"1006", "12"}, {"1001", ""}}, centres.Rows)
	assert.Equal(t, [][]string{{"Rice", "1006"}, {"Wheat", "1001"}}, commods.Rows)
}

func TestSheetsSourceNeedsTwoWorksheets(t *testing.T) {
	ts := newSheetsTestServer(t, []string{"Centres"}, nil)
	defer ts.Close()

	src, err := NewSheetsSource(context.Background(), "sheet-123", "",
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	_, _, err = src.Tables(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need at least 2")
}

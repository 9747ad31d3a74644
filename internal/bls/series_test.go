package bls

import "testing"

func TestSeriesID_Build(t *testing.T) {
	got := SeriesID{}.Build()
	want := "OEUM000000000000000000001"
	if got != want {
		t.Fatalf("zero series = %q, want %q", got, want)
	}

	got = SeriesID{OccupationCode: "151252", DataType: DataTypeAnnualMedian}.Build()
	want = "OEUM000000000000015125213"
	if got != want {
		t.Fatalf("occupation series = %q, want %q", got, want)
	}
}

func TestNationalEmploymentSeries(t *testing.T) {
	got := NationalEmploymentSeries("15-1252")
	want := "OEUM000000000000015125201"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNationalWageSeries(t *testing.T) {
	cases := []struct {
		wageType string
		suffix   string
	}{
		{"annual_mean", "04"},
		{"annual_median", "13"},
		{"hourly_mean", "03"},
		{"hourly_median", "08"},
		{"bogus", "13"},
	}
	for _, c := range cases {
		got := NationalWageSeries("15-1252", c.wageType)
		if got[len(got)-2:] != c.suffix {
			t.Fatalf("%s: got %q, want suffix %q", c.wageType, got, c.suffix)
		}
	}
}

func TestSeriesValue(t *testing.T) {
	if v := SeriesValue(SeriesData{Year: "2024", Value: "132270"}); v == nil || *v != 132270 {
		t.Fatalf("plain value = %v", v)
	}
	if v := SeriesValue(SeriesData{Year: "2024", Value: "1,656,880"}); v == nil || *v != 1656880 {
		t.Fatalf("comma value = %v", v)
	}
	if v := SeriesValue(SeriesData{Year: "2024", Value: "*"}); v != nil {
		t.Fatalf("suppressed value = %v, want nil", v)
	}
}

func TestOccupationToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15-1252", "151252"},
		{"15-1252.00", "151252"},
		{"1512", "151200"},
		{"", "000000"},
	}
	for _, c := range cases {
		if got := occupationToken(c.in); got != c.want {
			t.Fatalf("occupationToken(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

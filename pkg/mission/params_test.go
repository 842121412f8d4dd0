package mission

import "testing"

func TestParams_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{
			name: "in range untouched",
			in:   Params{RowTimeMS: 1500, NumRows: 3, TurnPower: 60, TurnRadiusCM: 19, TurnTimeMS: 2500, CaptureEachRow: true},
			want: Params{RowTimeMS: 1500, NumRows: 3, TurnPower: 60, TurnRadiusCM: 19, TurnTimeMS: 2500, CaptureEachRow: true},
		},
		{
			name: "zero values pulled to minimums",
			in:   Params{},
			want: Params{RowTimeMS: 500, NumRows: 1, TurnPower: 10, TurnRadiusCM: 10, TurnTimeMS: 500},
		},
		{
			name: "negative values pulled to minimums",
			in:   Params{RowTimeMS: -100, NumRows: -5, TurnPower: -1, TurnRadiusCM: -19, TurnTimeMS: -2500},
			want: Params{RowTimeMS: 500, NumRows: 1, TurnPower: 10, TurnRadiusCM: 10, TurnTimeMS: 500},
		},
		{
			name: "oversized values pulled to maximums",
			in:   Params{RowTimeMS: 99999, NumRows: 500, TurnPower: 250, TurnRadiusCM: 9999, TurnTimeMS: 99999},
			want: Params{RowTimeMS: 20000, NumRows: 50, TurnPower: 100, TurnRadiusCM: 200, TurnTimeMS: 12000},
		},
		{
			name: "bounds themselves pass through",
			in:   Params{RowTimeMS: 500, NumRows: 50, TurnPower: 100, TurnRadiusCM: 10, TurnTimeMS: 12000},
			want: Params{RowTimeMS: 500, NumRows: 50, TurnPower: 100, TurnRadiusCM: 10, TurnTimeMS: 12000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp(%+v): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

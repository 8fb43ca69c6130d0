package availability

import (
	"reflect"
	"testing"

	"slotify/models"
)

func starts(slots []models.Slot) []int {
	if len(slots) == 0 {
		return nil
	}
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name       string
		free       []models.Interval
		duration   int
		step       int
		nowMin     int
		isToday    bool
		wantStarts []int
	}{
		{
			name:       "step equal to duration tiles the interval",
			free:       []models.Interval{iv(540, 660)},
			duration:   30,
			step:       30,
			wantStarts: []int{540, 570, 600, 630},
		},
		{
			name:       "step smaller than duration yields overlapping starts",
			free:       []models.Interval{iv(540, 660)},
			duration:   60,
			step:       15,
			wantStarts: []int{540, 555, 570, 585, 600},
		},
		{
			name:       "last slot must fit entirely",
			free:       []models.Interval{iv(540, 650)},
			duration:   60,
			step:       30,
			wantStarts: []int{540},
		},
		{
			name:       "interval shorter than duration yields nothing",
			free:       []models.Interval{iv(540, 570)},
			duration:   60,
			step:       15,
			wantStarts: nil,
		},
		{
			name:       "today skips slots starting before now",
			free:       []models.Interval{iv(540, 720)},
			duration:   30,
			step:       30,
			nowMin:     601,
			isToday:    true,
			wantStarts: []int{630, 660, 690},
		},
		{
			name:       "other days ignore the clock",
			free:       []models.Interval{iv(540, 660)},
			duration:   30,
			step:       30,
			nowMin:     1200,
			isToday:    false,
			wantStarts: []int{540, 570, 600, 630},
		},
		{
			name:       "zero step yields nothing",
			free:       []models.Interval{iv(540, 660)},
			duration:   30,
			step:       0,
			wantStarts: nil,
		},
		{
			name:       "multiple windows walked independently",
			free:       []models.Interval{iv(540, 600), iv(660, 720)},
			duration:   30,
			step:       30,
			wantStarts: []int{540, 570, 660, 690},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.free, tt.duration, tt.step, tt.nowMin, tt.isToday)
			if !reflect.DeepEqual(starts(got), tt.wantStarts) {
				t.Errorf("GenerateSlots() starts = %v, want %v", starts(got), tt.wantStarts)
			}
		})
	}
}

func TestGenerateSlotsLabels(t *testing.T) {
	got := GenerateSlots([]models.Interval{iv(540, 600)}, 30, 30, 0, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(got))
	}
	if got[0].Label != "09:00 - 09:30" || got[1].Label != "09:30 - 10:00" {
		t.Errorf("unexpected labels: %q, %q", got[0].Label, got[1].Label)
	}
}

func TestUnionSlots(t *testing.T) {
	a := []models.Slot{models.NewSlot(540, 570), models.NewSlot(600, 630)}
	b := []models.Slot{models.NewSlot(540, 570), models.NewSlot(570, 600)}

	got := UnionSlots(a, b)
	want := []int{540, 570, 600}
	if !reflect.DeepEqual(starts(got), want) {
		t.Errorf("UnionSlots() starts = %v, want %v", starts(got), want)
	}

	if UnionSlots(nil, nil) != nil {
		t.Errorf("union of empty lists should be nil")
	}
}

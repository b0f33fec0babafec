package progress

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want float64
	}{
		{"zero max", Progress{Current: 5, Max: 0}, 0},
		{"start", Progress{Current: 0, Max: 100}, 0},
		{"half", Progress{Current: 50, Max: 100}, 0.5},
		{"done", Progress{Current: 100, Max: 100}, 1},
		{"overshoot clamps", Progress{Current: 150, Max: 100}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Percent(); got != tt.want {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := (Operation{Kind: Filtering}).Label(); got != "Filtering" {
		t.Errorf("Label() = %q, want Filtering", got)
	}
	if got := (Operation{Kind: Loading, Path: "/var/log/app.log"}).Label(); got != "Loading app.log" {
		t.Errorf("Label() = %q, want %q", got, "Loading app.log")
	}
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker()
	load := Operation{Kind: Loading, Path: "a.log"}
	save := Operation{Kind: Saving, Path: "b.log"}

	tr.Start(load, 100)
	tr.Update(save, 10, 40)
	tr.Update(load, 30, 100)

	active := tr.Active()
	if len(active) != 2 {
		t.Fatalf("Active() len = %d, want 2", len(active))
	}
	if active[0].Op != load || active[1].Op != save {
		t.Fatalf("Active() order = %v, %v; want load, save", active[0].Op, active[1].Op)
	}
	if active[0].Progress.Current != 30 {
		t.Fatalf("load current = %d, want 30", active[0].Progress.Current)
	}

	tr.Finish(load)
	if _, ok := tr.Get(load); ok {
		t.Fatal("load should be gone after Finish")
	}
	if p, ok := tr.Get(save); !ok || p.Percent() != 0.25 {
		t.Fatalf("save progress = %+v, want 25%%", p)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

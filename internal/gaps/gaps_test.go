package gaps

import (
	"reflect"
	"testing"
)

func TestDetect_NoBusyReturnsWholeWindow(t *testing.T) {
	got := Detect(Interval{Start: 0, End: 100}, nil, 15)
	want := []Interval{{Start: 0, End: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_SingleBusySplitsWindow(t *testing.T) {
	got := Detect(Interval{Start: 0, End: 100}, []Interval{{Start: 40, End: 60}}, 15)
	want := []Interval{{Start: 0, End: 40}, {Start: 60, End: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_OverlappingBusyIntervalsMerge(t *testing.T) {
	busy := []Interval{{Start: 30, End: 50}, {Start: 45, End: 70}}
	got := Detect(Interval{Start: 0, End: 100}, busy, 1)
	want := []Interval{{Start: 0, End: 30}, {Start: 70, End: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_TouchingBusyIntervalsMerge(t *testing.T) {
	busy := []Interval{{Start: 10, End: 20}, {Start: 20, End: 30}}
	got := Detect(Interval{Start: 0, End: 40}, busy, 1)
	want := []Interval{{Start: 0, End: 10}, {Start: 30, End: 40}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_ThresholdDropsTinyGaps(t *testing.T) {
	busy := []Interval{{Start: 10, End: 20}, {Start: 25, End: 100}}
	got := Detect(Interval{Start: 0, End: 100}, busy, 10)
	want := []Interval{{Start: 0, End: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_BusyOutsideWindowIgnored(t *testing.T) {
	busy := []Interval{{Start: -50, End: -10}, {Start: 200, End: 300}}
	got := Detect(Interval{Start: 0, End: 100}, busy, 1)
	want := []Interval{{Start: 0, End: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_BusyPartiallyOutsideWindowIsClamped(t *testing.T) {
	busy := []Interval{{Start: -10, End: 10}, {Start: 90, End: 200}}
	got := Detect(Interval{Start: 0, End: 100}, busy, 1)
	want := []Interval{{Start: 10, End: 90}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetect_BusyCoversEntireWindow(t *testing.T) {
	got := Detect(Interval{Start: 0, End: 100}, []Interval{{Start: 0, End: 100}}, 1)
	if len(got) != 0 {
		t.Errorf("expected no gaps, got %+v", got)
	}
}

func TestDetect_UnsortedBusyInput(t *testing.T) {
	busy := []Interval{{Start: 70, End: 90}, {Start: 10, End: 30}}
	got := Detect(Interval{Start: 0, End: 100}, busy, 1)
	want := []Interval{{Start: 0, End: 10}, {Start: 30, End: 70}, {Start: 90, End: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

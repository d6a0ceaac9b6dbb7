package logging

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestLevelStrings(t *testing.T) {
	for _, level := range []Level{DEBUG, INFO, WARN, ERROR} {
		serialized := level.String()
		parsed, err := LevelFromString(serialized)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, level)
	}

	parsed, err := LevelFromString("warning")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, WARN)
}

func TestJSONRoundTrip(t *testing.T) {
	type allLevels struct {
		Debug Level
		Info  Level
		Warn  Level
		Error Level
	}

	levels := allLevels{DEBUG, INFO, WARN, ERROR}

	serialized, err := json.Marshal(levels)
	test.That(t, err, test.ShouldBeNil)

	var parsed allLevels
	test.That(t, json.Unmarshal(serialized, &parsed), test.ShouldBeNil)
	test.That(t, parsed, test.ShouldResemble, levels)
}

func TestJSONErrors(t *testing.T) {
	var level Level
	test.That(t, json.Unmarshal([]byte(`{}`), &level), test.ShouldNotBeNil)
	test.That(t, json.Unmarshal([]byte(`Debug"`), &level), test.ShouldNotBeNil)
	test.That(t, json.Unmarshal([]byte(`"not a level"`), &level), test.ShouldNotBeNil)
}

func TestSublogger(t *testing.T) {
	logger := NewTestLogger(t)
	child := logger.Sublogger("child")
	child.Infow("hello", "k", 1)
	logger.Debugw("parent debug")
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Errorw("should not panic", "x", 1)
	logger.Sublogger("sub").Warnw("also fine")
}

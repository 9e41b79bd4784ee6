package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.rambutan.dev/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatRambutan("-version").WritesStdout(Value.Version+"\n"),
		ThatRambutan("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatRambutan("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatRambutan("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatRambutan().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestAddVariant(t *testing.T) {
	if got := addVariant("0.1.0", ""); got != "0.1.0" {
		t.Errorf("got %q", got)
	}
	if got := addVariant("0.1.0", "distro"); got != "0.1.0+distro" {
		t.Errorf("got %q", got)
	}
}

func vcsInfo(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

var devVersionTests = []struct {
	name        string
	vcsOverride string
	bi          *debug.BuildInfo
	want        string
}{
	{name: "no build info", want: "0.2.0-dev.unknown"},
	{
		name: "development build",
		bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
		want: "0.2.0-dev.unknown",
	},
	{
		name: "installed at a version",
		bi:   &debug.BuildInfo{Main: debug.Module{Version: "v0.1.3"}},
		want: "0.1.3",
	},
	{
		name: "clean checkout",
		bi:   vcsInfo("abcdef0123456789", "2024-02-29T08:30:00Z", "false"),
		want: "0.2.0-dev.0.20240229083000-abcdef012345",
	},
	{
		name: "modified checkout",
		bi:   vcsInfo("abcdef0123456789", "2024-02-29T08:30:00Z", "true"),
		want: "0.2.0-dev.0.20240229083000-abcdef012345-dirty",
	},
	{
		name: "short revision",
		bi:   vcsInfo("abc", "2024-02-29T08:30:00+01:00", "false"),
		want: "0.2.0-dev.0.20240229073000-abc",
	},
	{
		name: "bad timestamp",
		bi:   vcsInfo("abcdef0123456789", "leap day", "false"),
		want: "0.2.0-dev.unknown",
	},
	{
		name: "no revision",
		bi:   vcsInfo("", "2024-02-29T08:30:00Z", "false"),
		want: "0.2.0-dev.unknown",
	},
	{
		name:        "override",
		vcsOverride: "20240229083000-abcdef012345",
		bi:          vcsInfo("ignored", "ignored", "true"),
		want:        "0.2.0-dev.0.20240229083000-abcdef012345",
	},
}

func TestDevVersion(t *testing.T) {
	for _, test := range devVersionTests {
		t.Run(test.name, func(t *testing.T) {
			readBuildInfo := func() (*debug.BuildInfo, bool) {
				return test.bi, test.bi != nil
			}
			got := devVersion("0.2.0", test.vcsOverride, readBuildInfo)
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

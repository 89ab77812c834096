//go:build !windows

package imgcurator

import "testing"

func TestPleasantPath(t *testing.T) {
	type args struct {
		absolute    string
		documentDir string
		wd          string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{name: "NextToDocument", args: args{absolute: "/notes/a.png", documentDir: "/notes", wd: "/notes"}, want: "./a.png"},
		{name: "InAssetsFromDocumentDir", args: args{absolute: "/notes/doc.assets/a.png", documentDir: "/notes", wd: "/notes"}, want: "./doc.assets/a.png"},
		{name: "InAssetsFromAssets", args: args{absolute: "/notes/doc.assets/a.png", documentDir: "/notes", wd: "/notes/doc.assets"}, want: "./a.png"},
		{name: "DocumentDirFromAssets", args: args{absolute: "/notes/doc_new.md", documentDir: "/notes", wd: "/notes/doc.assets"}, want: "../doc_new.md"},
		{name: "FromDeepBelow", args: args{absolute: "/notes/a.png", documentDir: "/notes", wd: "/notes/x/y"}, want: "../../a.png"},
		{name: "FromAbove", args: args{absolute: "/notes/doc.assets/a.png", documentDir: "/notes", wd: "/"}, want: "doc://doc.assets/a.png"},
		{name: "FromSibling", args: args{absolute: "/notes/a.png", documentDir: "/notes", wd: "/other"}, want: "doc://a.png"},
		{name: "OutsideFromOutside", args: args{absolute: "/images/a.png", documentDir: "/notes", wd: "/other"}, want: "/images/a.png"},
		{name: "OutsideFromInside", args: args{absolute: "/images/a.png", documentDir: "/notes", wd: "/notes"}, want: "../images/a.png"},
		{name: "NoDocument", args: args{absolute: "/images/sub/a.png", documentDir: "", wd: "/images"}, want: "./sub/a.png"},
		{name: "PrefixIsNotParent", args: args{absolute: "/notes2/a.png", documentDir: "/notes", wd: "/"}, want: "/notes2/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pleasantPath(tt.args.absolute, tt.args.documentDir, tt.args.wd); got != tt.want {
				t.Errorf("pleasantPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

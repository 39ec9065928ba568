package drivertest

import (
	"errors"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestHidden tests the hidden attribute.
func TestHidden(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "DotName", func(t *testing.T) {
		p := Base + ".secret"
		mustCreateFile(t, d, p)

		if attrs := mustQuery(t, d, p); !attrs.Hidden {
			t.Errorf("QueryAttributes(%s): Hidden = false, want true", p)
		}
	})

	run(t, d, config, "SetHiddenNoop", func(t *testing.T) {
		p := Base + "plain.txt"
		mustCreateFile(t, d, p)

		if err := d.SetHidden(p, false); err != nil {
			t.Errorf("SetHidden(%s, false) on visible entity: got error %v, want nil", p, err)
		}
	})

	if !config.Hidden {
		run(t, d, config, "SetHiddenUnsupported", func(t *testing.T) {
			p := Base + "plain.txt"
			mustCreateFile(t, d, p)

			err := d.SetHidden(p, true)
			if !errors.Is(err, driver.ErrUnsupported) {
				t.Errorf("SetHidden(%s, true): got error %v, want driver.ErrUnsupported", p, err)
			}
		})
		return
	}

	run(t, d, config, "Toggle", func(t *testing.T) {
		p := Base + "plain.txt"
		mustCreateFile(t, d, p)

		if err := d.SetHidden(p, true); err != nil {
			t.Fatalf("SetHidden(%s, true): got error %v, want nil", p, err)
		}
		if attrs := mustQuery(t, d, p); !attrs.Hidden {
			t.Fatalf("QueryAttributes(%s): Hidden = false after SetHidden(true)", p)
		}

		if err := d.SetHidden(p, false); err != nil {
			t.Fatalf("SetHidden(%s, false): got error %v, want nil", p, err)
		}
		if attrs := mustQuery(t, d, p); attrs.Hidden {
			t.Errorf("QueryAttributes(%s): Hidden = true after SetHidden(false)", p)
		}
	})

	run(t, d, config, "CreateHidden", func(t *testing.T) {
		p := Base + "dir/"
		if err := d.CreateDirectory(p, driver.CreateOptions{Readable: true, Writable: true, Hidden: true}); err != nil {
			t.Fatalf("CreateDirectory(%s, hidden): got error %v, want nil", p, err)
		}
		if attrs := mustQuery(t, d, p); !attrs.Hidden {
			t.Errorf("QueryAttributes(%s): Hidden = false, want true", p)
		}
	})

	run(t, d, config, "FollowsMove", func(t *testing.T) {
		mustCreateFile(t, d, Base+"a.txt")
		if err := d.SetHidden(Base+"a.txt", true); err != nil {
			t.Fatalf("SetHidden: got error %v, want nil", err)
		}

		if err := d.Move(Base+"a.txt", Base+"b.txt"); err != nil {
			t.Fatalf("Move: got error %v, want nil", err)
		}
		if attrs := mustQuery(t, d, Base+"b.txt"); !attrs.Hidden {
			t.Error("QueryAttributes(b.txt): Hidden = false after move, want true")
		}
	})
}

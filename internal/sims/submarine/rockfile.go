package submarine

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"subsim/internal/sims/submarine/rock"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
)

// LoadRock decodes a rock bitmap from disk.
func LoadRock(path string) (*rock.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rock image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rock image %s: %w", path, err)
	}
	g, err := rock.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("rock image %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"path": path, "format": format, "w": g.Width(), "h": g.Height()}).Info("rock loaded")
	return g, nil
}

// buildRock returns the configured rock world, falling back to the generated
// floor when the bitmap cannot be used.
func (c Config) buildRock(seed int64) *rock.Grid {
	if c.RockImage != "" {
		g, err := LoadRock(c.RockImage)
		if err == nil {
			return g
		}
		log.WithError(err).Warn("using generated rock")
	}
	return DemoRock(c.RockWidth, c.RockHeight, c.Boulders, seed)
}

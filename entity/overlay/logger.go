package overlay

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "overlay")

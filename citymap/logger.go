package citymap

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "citymap")

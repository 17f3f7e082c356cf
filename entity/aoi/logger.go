package aoi

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "aoi")

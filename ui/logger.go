package ui

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "ui")

package driving

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "driving")

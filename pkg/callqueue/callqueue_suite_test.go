package callqueue_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCallqueue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Call Queue Suite")
}

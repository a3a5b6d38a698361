package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// JUnit XML structures

// JUnitTestSuites is the root element
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite groups the documents of one validation run
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase represents a single request document
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure marks a document with unresolved variables in strict mode
type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// JUnitError marks a document that failed to decode
type JUnitError struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// JUnitFormatter formats validation results as JUnit XML
type JUnitFormatter struct {
	writer io.Writer
	suite  JUnitTestSuite
	now    func() time.Time
}

type JUnitOption func(*JUnitFormatter)

func NewJUnitFormatter(opts ...JUnitOption) *JUnitFormatter {
	f := &JUnitFormatter{
		writer: os.Stdout,
		suite: JUnitTestSuite{
			Name:      "validate",
			TestCases: make([]JUnitTestCase, 0),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitFormatter) {
		f.writer = w
	}
}

// JUnitWithClock sets the time source for the report timestamp.
func JUnitWithClock(now func() time.Time) JUnitOption {
	return func(f *JUnitFormatter) {
		f.now = now
	}
}

func (f *JUnitFormatter) FormatValidation(result *ValidationResult) {
	tc := JUnitTestCase{
		Name:      result.File,
		ClassName: "steq.validate",
		Time:      result.Duration.Seconds(),
	}

	switch {
	case result.Err != nil:
		f.suite.Errors++
		tc.Error = &JUnitError{
			Message: result.Err.Error(),
			Type:    "DecodeError",
		}
	case !result.Passed():
		f.suite.Failures++
		tc.Failure = &JUnitFailure{
			Message: "Unresolved variables",
			Type:    "UnresolvedVariable",
			Content: strings.Join(result.Unresolved, "\n"),
		}
	}

	f.suite.Tests++
	f.suite.TestCases = append(f.suite.TestCases, tc)
}

func (f *JUnitFormatter) FormatError(err error) {
	// Errors are included in individual test cases
}

func (f *JUnitFormatter) FormatHeader(version string) {
	// No header needed for JUnit XML
}

// Flush writes the accumulated JUnit XML output
func (f *JUnitFormatter) Flush(totalDuration time.Duration) error {
	f.suite.Time = totalDuration.Seconds()

	suites := JUnitTestSuites{
		Name:       "steq",
		Tests:      f.suite.Tests,
		Failures:   f.suite.Failures,
		Errors:     f.suite.Errors,
		Time:       totalDuration.Seconds(),
		Timestamp:  f.now().Format(time.RFC3339),
		TestSuites: []JUnitTestSuite{f.suite},
	}

	fmt.Fprintf(f.writer, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	return encoder.Encode(suites)
}

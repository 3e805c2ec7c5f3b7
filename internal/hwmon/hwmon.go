package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fanchase/chased/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

// HwMonSlot is a fan connector found on a hwmon chip, pairing the
// tach input with the pwm output that drives it.
type HwMonSlot struct {
	Label     string
	Index     int
	RpmInput  string
	PwmOutput string
	Rpm       int
}

type HwMonController struct {
	Name     string
	DType    string
	Modalias string
	Platform string
	Path     string

	Slots []*HwMonSlot
}

func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		var identifier = computeIdentifier(chip)
		dType := util.GetDeviceType(chip.Path)
		modalias := util.GetDeviceModalias(chip.Path)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		slots := GetSlots(chip)
		if len(slots) <= 0 {
			continue
		}

		c := &HwMonController{
			Name:     identifier,
			DType:    dType,
			Modalias: modalias,
			Platform: platform,
			Path:     chip.Path,
			Slots:    slots,
		}
		list = append(list, c)
	}

	return list
}

func GetSlots(chip gosensors.Chip) []*HwMonSlot {
	var slots []*HwMonSlot

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeFan {
			continue
		}

		subfeatures := feature.GetSubFeatures()

		if containsSubFeature(subfeatures, gosensors.SubFeatureTypeFanInput) {
			inputSubFeature := getSubFeature(subfeatures, gosensors.SubFeatureTypeFanInput)
			rpmInput := fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name)

			label := getLabel(chip.Path, inputSubFeature.Name)

			slot := &HwMonSlot{
				Label:     label,
				Index:     len(slots) + 1,
				RpmInput:  rpmInput,
				PwmOutput: pwmOutputFor(chip.Path, inputSubFeature.Name),
				Rpm:       int(inputSubFeature.GetValue()),
			}

			slots = append(slots, slot)
		}
	}

	return slots
}

// pwmOutputFor maps a "fanN_input" tach to the "pwmN" output of the
// same chip, if one exists.
func pwmOutputFor(devicePath string, input string) string {
	number := strings.TrimSuffix(strings.TrimPrefix(input, "fan"), "_input")
	pwmPath := fmt.Sprintf("%s/pwm%s", devicePath, number)
	if _, err := os.Stat(pwmPath); err != nil {
		return ""
	}
	return pwmPath
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) gosensors.SubFeature {
	for _, a := range subfeatures {
		if a.Type == input {
			return a
		}
	}
	panic(fmt.Errorf("no such element: %v", input))
}

func containsSubFeature(s []gosensors.SubFeature, e gosensors.SubFeatureType) bool {
	for _, a := range s {
		if a.Type == e {
			return true
		}
	}
	return false
}

// getLabel reads the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := string(content)
	if len(label) <= 0 {
		_, label = filepath.Split(devicePath)
	}
	return strings.TrimSpace(label)
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d", identifier, chip.Bus.Nr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d", identifier, chip.Bus.Nr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(".*/platform/{}/.*")
	return platformRegex.FindString(devicePath)
}

package export

import (
	"fmt"
	"hash/fnv"
	"io"
	"math/big"

	"github.com/mrsinham/markerforge/internal/marker"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	secondaryCaptureSOPClassUID = "1.2.840.10008.5.1.4.1.1.7"
	explicitVRLittleEndian      = "1.2.840.10008.1.2.1"
)

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// deterministicUID derives a UID under the 2.25 root from a name, so the
// same marker always gets the same identifiers.
func deterministicUID(name string) string {
	h := fnv.New128a()
	_, _ = h.Write([]byte(name))
	return "2.25." + new(big.Int).SetBytes(h.Sum(nil)).String()
}

// encodeDICOM writes m as an RGB Secondary Capture image.
func encodeDICOM(w io.Writer, m marker.Marker) error {
	img := m.Image
	size := img.Size()
	if size == 0 {
		return fmt.Errorf("marker %d has an empty image", m.Seed)
	}

	nativeFrame := frame.NewNativeFrame[uint8](8, size, size, size*size, 3)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			si := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			di := (y*size + x) * 3
			nativeFrame.RawData[di] = img.Pix[si]
			nativeFrame.RawData[di+1] = img.Pix[si+1]
			nativeFrame.RawData[di+2] = img.Pix[si+2]
		}
	}

	key := fmt.Sprintf("markerforge_%s_%d_%d", m.Kind, m.Seed, size)
	studyUID := deterministicUID(key + "_study")
	seriesUID := deterministicUID(key + "_series")
	sopInstanceUID := deterministicUID(key + "_instance")

	// Elements are listed in ascending tag order.
	elements := []*dicom.Element{
		mustNewElement(tag.MediaStorageSOPClassUID, []string{secondaryCaptureSOPClassUID}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.SOPClassUID, []string{secondaryCaptureSOPClassUID}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"SYN"}),
		mustNewElement(tag.SeriesDescription, []string{fmt.Sprintf("%s marker seed %d", m.Kind, m.Seed)}),
		mustNewElement(tag.PatientName, []string{"MARKER^" + string(m.Kind)}),
		mustNewElement(tag.PatientID, []string{fmt.Sprintf("%d", m.Seed)}),
		mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
		mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.ImageComments, []string{m.Label}),
		mustNewElement(tag.SamplesPerPixel, []int{3}),
		mustNewElement(tag.PhotometricInterpretation, []string{"RGB"}),
		mustNewElement(tag.PlanarConfiguration, []int{0}),
		mustNewElement(tag.Rows, []int{size}),
		mustNewElement(tag.Columns, []int{size}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	}

	return dicom.Write(w, dicom.Dataset{Elements: elements})
}

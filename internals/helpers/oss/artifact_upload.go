package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"geometriku_backend/internals/configs"
)

// Batas ukuran artefak LKPD.
const maxArtifactSize = int64(5 * 1024 * 1024)

// Sisi terpanjang gambar setelah resize.
const maxImageSide = 1600

// UploadResult adalah rujukan artefak yang disimpan engine di payload tahap.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

var (
	bucketOnce sync.Once
	bucketRef  *oss.Bucket
	bucketErr  error
)

func artifactBucket() (*oss.Bucket, error) {
	bucketOnce.Do(func() {
		if configs.OSSBucket == "" {
			bucketErr = fmt.Errorf("OSS belum dikonfigurasi (OSS_BUCKET kosong)")
			return
		}
		client, err := oss.New(configs.OSSEndpoint, configs.OSSAccessKey, configs.OSSSecretKey)
		if err != nil {
			bucketErr = err
			return
		}
		bucketRef, bucketErr = client.Bucket(configs.OSSBucket)
	})
	return bucketRef, bucketErr
}

// UploadStageArtifact mengunggah file artefak tahap LKPD (sketsa/foto) dan
// mengembalikan rujukannya. Gambar JPEG/PNG dikonversi ke WebP (resize
// keep-aspect) supaya hemat; jenis file lain diunggah apa adanya.
func UploadStageArtifact(ownerID uuid.UUID, projectID uuid.UUID, stage int, fh *multipart.FileHeader, kind string) (*UploadResult, error) {
	if fh == nil {
		return nil, fmt.Errorf("file kosong")
	}
	if fh.Size > maxArtifactSize {
		return nil, fmt.Errorf("ukuran file maksimal %d MB", maxArtifactSize/(1024*1024))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if converted, ok := convertImageToWebP(data, ext); ok {
		data = converted
		ext = ".webp"
	}

	if kind == "" {
		kind = "artifact"
	}
	objectKey := fmt.Sprintf("lkpd/%s/%s/stage%d/%s-%s%s",
		ownerID.String(), projectID.String(), stage, kind, uuid.NewString(), ext)

	bucket, err := artifactBucket()
	if err != nil {
		return nil, err
	}
	if err := bucket.PutObject(objectKey, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:  fmt.Sprintf("https://%s.%s/%s", configs.OSSBucket, configs.OSSEndpoint, objectKey),
		Path: objectKey,
		Size: int64(len(data)),
	}, nil
}

// convertImageToWebP: decode JPEG/PNG, resize keep-aspect ke maxImageSide,
// encode lossy WebP. ok=false berarti bukan gambar yang kita tangani.
func convertImageToWebP(data []byte, ext string) ([]byte, bool) {
	var img image.Image
	var err error
	switch ext {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	img = resizeKeepAspect(img, maxImageSide)

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: 80}); err != nil {
		return nil, false
	}
	return out.Bytes(), true
}

func resizeKeepAspect(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(w)
	if h > w {
		scale = float64(maxSide) / float64(h)
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Command encoder-stub stands in for the external Huffman encoder service
// during local development.
package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/refencoder"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	logg := logger.New("encoder-stub", os.Getenv("LOG_LEVEL"))

	r := gin.Default()
	r.POST("/api/files/upload", func(c *gin.Context) {
		name, data, ok := readUpload(c)
		if !ok {
			return
		}
		res := refencoder.Encode(name, data)
		logg.Infof("encoded %s: %d bytes -> %d bits, %d stages", name, len(data), len(res.EncodedData), len(res.BuildSteps))
		c.JSON(http.StatusOK, res)
	})

	// decode expects the JSON produced by /api/files/upload
	r.POST("/api/files/decode", func(c *gin.Context) {
		name, data, ok := readUpload(c)
		if !ok {
			return
		}
		var in refencoder.Result
		if err := json.Unmarshal(data, &in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not an encoded file: " + err.Error()})
			return
		}
		out, err := refencoder.Decode(in.EncodedData, in.Codes)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logg.Infof("decoded %s: %d bits -> %d bytes", name, len(in.EncodedData), len(out))
		c.JSON(http.StatusOK, gin.H{
			"encodedData": in.EncodedData,
			"crc":         in.CRC,
			"filename":    in.Filename,
			"codes":       in.Codes,
			"message":     string(out),
		})
	})

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func readUpload(c *gin.Context) (string, []byte, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}
	return fh.Filename, data, true
}

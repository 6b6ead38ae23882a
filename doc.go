// Package mimiry is a client for the Mimiry GPU Cloud API.
//
// Every call sends the API key as a bearer token and exchanges JSON bodies.
// Non-2xx responses surface as *Error with a Kind drawn from the API's error
// taxonomy (authentication, insufficient credits, rate limit, ...), plus the
// original status code and decoded body for inspection.
//
//	client, err := mimiry.New(os.Getenv("MIMIRY_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	job, err := client.SubmitJobAndWait(ctx, mimiry.SubmitJobRequest{
//		Name:         "train-run",
//		InstanceType: "1V100.6V",
//		Image:        "ubuntu-22.04-cuda-12.0",
//		Location:     "FIN-01",
//		SSHKeyIDs:    []string{keyID},
//	}, mimiry.DefaultWaitConfig)
//
// Optional request fields use pointers; the Bool and Int helpers build them:
//
//	req.MaxRuntimeSeconds = mimiry.Int(7200)
//	req.AutoShutdown = mimiry.Bool(false)
//
// Statuses are open string enums: unknown values returned by the API are
// preserved and compare as plain strings.
package mimiry

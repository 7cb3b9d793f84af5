package handler

// APIV1Prefix is the base path for every versioned endpoint; tests build URLs from it too.
const APIV1Prefix = "/api/v1"
